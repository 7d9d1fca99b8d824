package matching

import (
	"context"
	"log/slog"
	"sort"
	"strings"

	"github.com/hzaheer48/access-job-recommendation-system-sub001/internal/model"
)

// LearningCatalog resolves learning resources for a skill. The engine never
// owns resource content; it only attaches what the catalog returns.
type LearningCatalog interface {
	Lookup(ctx context.Context, skill string) ([]model.LearningResource, error)
}

// AnalyzeSkillGaps aggregates skill demand across the target job set,
// excluding skills the candidate already holds (by name only; proficiency
// level is ignored here, unlike the scorer). Entries are sorted by demand
// descending, ties by skill name, and enriched from the learning catalog.
//
// A catalog lookup failure is logged and leaves that entry without resources;
// it never fails the whole report.
func AnalyzeSkillGaps(ctx context.Context, profile model.CandidateProfile, jobs []model.JobPosting, catalog LearningCatalog) (model.SkillGapReport, error) {
	held := make(map[string]bool, len(profile.Skills))
	for _, s := range profile.Skills {
		held[strings.ToLower(s.Name)] = true
	}

	type stats struct {
		name       string
		count      int
		totalLevel int
		jobIDs     []string
	}
	byKey := make(map[string]*stats)

	for _, job := range jobs {
		counted := make(map[string]bool, len(job.RequiredSkills))
		for _, req := range job.RequiredSkills {
			key := strings.ToLower(req.Name)
			if held[key] || counted[key] {
				continue
			}
			counted[key] = true

			level := req.Level
			if level <= 0 {
				level = model.DefaultRequiredLevel
			}
			level = model.ClampLevel(level)

			st, ok := byKey[key]
			if !ok {
				st = &stats{name: req.Name}
				byKey[key] = st
			}
			st.count++
			st.totalLevel += level
			st.jobIDs = append(st.jobIDs, job.ID)
		}
	}

	demands := make([]model.SkillDemand, 0, len(byKey))
	for _, st := range byKey {
		demands = append(demands, model.SkillDemand{
			Skill:        st.name,
			Demand:       st.count,
			AverageLevel: float64(st.totalLevel) / float64(st.count),
			JobIDs:       st.jobIDs,
		})
	}
	sort.Slice(demands, func(i, j int) bool {
		if demands[i].Demand != demands[j].Demand {
			return demands[i].Demand > demands[j].Demand
		}
		return strings.ToLower(demands[i].Skill) < strings.ToLower(demands[j].Skill)
	})

	if catalog != nil {
		for i := range demands {
			resources, err := catalog.Lookup(ctx, demands[i].Skill)
			if err != nil {
				slog.Warn("learning catalog lookup failed", "skill", demands[i].Skill, "err", err)
				continue
			}
			demands[i].Resources = resources
		}
	}

	return model.SkillGapReport{ProfileID: profile.ID, Skills: demands}, nil
}
