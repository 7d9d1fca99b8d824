// Package source provides the external collaborators of the engine: the
// candidate profile source, the job corpus source and the learning resource
// catalog. Each has an in-memory form for tests and local development and a
// PostgreSQL adapter for production.
package source

import (
	"context"
	"strings"
	"sync"

	"github.com/hzaheer48/access-job-recommendation-system-sub001/internal/alerts"
	"github.com/hzaheer48/access-job-recommendation-system-sub001/internal/model"
)

// MemoryJobSource holds the job corpus in memory.
type MemoryJobSource struct {
	mu   sync.RWMutex
	jobs []model.JobPosting
}

var _ alerts.JobSource = (*MemoryJobSource)(nil)

// NewMemoryJobSource seeds a source with the given postings.
func NewMemoryJobSource(jobs ...model.JobPosting) *MemoryJobSource {
	return &MemoryJobSource{jobs: jobs}
}

// Add appends a posting to the corpus.
func (s *MemoryJobSource) Add(job model.JobPosting) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobs = append(s.jobs, job)
}

// ListActiveJobs returns every posting with IsActive set.
func (s *MemoryJobSource) ListActiveJobs(_ context.Context) ([]model.JobPosting, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.JobPosting, 0, len(s.jobs))
	for _, j := range s.jobs {
		if j.IsActive {
			out = append(out, j)
		}
	}
	return out, nil
}

// MemoryProfileSource holds candidate profiles keyed by user ID.
type MemoryProfileSource struct {
	mu       sync.RWMutex
	profiles map[string]model.CandidateProfile
}

// NewMemoryProfileSource seeds a source with the given profiles.
func NewMemoryProfileSource(profiles ...model.CandidateProfile) *MemoryProfileSource {
	m := make(map[string]model.CandidateProfile, len(profiles))
	for _, p := range profiles {
		m[p.ID] = p
	}
	return &MemoryProfileSource{profiles: m}
}

// GetProfile returns the profile for userID or alerts.ErrNotFound.
func (s *MemoryProfileSource) GetProfile(_ context.Context, userID string) (model.CandidateProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.profiles[userID]
	if !ok {
		return model.CandidateProfile{}, alerts.ErrNotFound
	}
	return p, nil
}

// Put stores or replaces a profile.
func (s *MemoryProfileSource) Put(p model.CandidateProfile) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profiles[p.ID] = p
}

// StaticCatalog is a fixed skill → resources mapping, matched
// case-insensitively. Unknown skills resolve to no resources, not an error.
type StaticCatalog struct {
	resources map[string][]model.LearningResource
}

// NewStaticCatalog builds a catalog from the given mapping.
func NewStaticCatalog(resources map[string][]model.LearningResource) *StaticCatalog {
	normalized := make(map[string][]model.LearningResource, len(resources))
	for skill, rs := range resources {
		normalized[strings.ToLower(skill)] = rs
	}
	return &StaticCatalog{resources: normalized}
}

// Lookup returns the resources registered for skill.
func (c *StaticCatalog) Lookup(_ context.Context, skill string) ([]model.LearningResource, error) {
	return c.resources[strings.ToLower(skill)], nil
}
