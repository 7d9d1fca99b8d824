package source

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hzaheer48/access-job-recommendation-system-sub001/internal/alerts"
	"github.com/hzaheer48/access-job-recommendation-system-sub001/internal/model"
)

// PostgresJobSource reads the job corpus from PostgreSQL.
type PostgresJobSource struct {
	pool *pgxpool.Pool
}

// NewPostgresJobSource returns a job source over the given pool.
func NewPostgresJobSource(pool *pgxpool.Pool) *PostgresJobSource {
	return &PostgresJobSource{pool: pool}
}

// ListActiveJobs fetches all is_active = true postings with their required
// skills.
func (s *PostgresJobSource) ListActiveJobs(ctx context.Context) ([]model.JobPosting, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, title, company, description, requirements, location,
		        COALESCE(salary_min, 0), COALESCE(salary_max, 0),
		        job_type, experience_level, industry, posted_date, remote, is_active
		 FROM job_postings
		 WHERE is_active = true
		 ORDER BY posted_date DESC`)
	if err != nil {
		return nil, fmt.Errorf("query job_postings: %w", err)
	}
	defer rows.Close()

	var jobs []model.JobPosting
	index := make(map[string]int)
	for rows.Next() {
		var j model.JobPosting
		if err := rows.Scan(
			&j.ID, &j.Title, &j.Company, &j.Description, &j.Requirements, &j.Location,
			&j.SalaryMin, &j.SalaryMax, &j.JobType, &j.ExperienceLevel, &j.Industry,
			&j.PostedDate, &j.Remote, &j.IsActive,
		); err != nil {
			return nil, fmt.Errorf("scan job_postings: %w", err)
		}
		index[j.ID] = len(jobs)
		jobs = append(jobs, j)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(jobs) == 0 {
		return jobs, nil
	}

	skillRows, err := s.pool.Query(ctx,
		`SELECT js.job_id, js.name, COALESCE(js.level, 0)
		 FROM job_skills js
		 JOIN job_postings jp ON jp.id = js.job_id
		 WHERE jp.is_active = true`)
	if err != nil {
		return nil, fmt.Errorf("query job_skills: %w", err)
	}
	defer skillRows.Close()

	for skillRows.Next() {
		var (
			jobID string
			req   model.SkillRequirement
		)
		if err := skillRows.Scan(&jobID, &req.Name, &req.Level); err != nil {
			return nil, fmt.Errorf("scan job_skills: %w", err)
		}
		if i, ok := index[jobID]; ok {
			jobs[i].RequiredSkills = append(jobs[i].RequiredSkills, req)
		}
	}
	return jobs, skillRows.Err()
}

// PostgresProfileSource reads candidate profiles from PostgreSQL.
type PostgresProfileSource struct {
	pool *pgxpool.Pool
}

// NewPostgresProfileSource returns a profile source over the given pool.
func NewPostgresProfileSource(pool *pgxpool.Pool) *PostgresProfileSource {
	return &PostgresProfileSource{pool: pool}
}

// GetProfile fetches one candidate profile and its skills.
// Returns alerts.ErrNotFound for an unknown user.
func (s *PostgresProfileSource) GetProfile(ctx context.Context, userID string) (model.CandidateProfile, error) {
	var p model.CandidateProfile
	err := s.pool.QueryRow(ctx,
		`SELECT id, desired_roles, preferred_locations,
		        COALESCE(salary_min, 0), COALESCE(salary_max, 0),
		        industries, COALESCE(work_arrangement, '')
		 FROM candidate_profiles
		 WHERE id = $1`, userID,
	).Scan(&p.ID, &p.DesiredRoles, &p.PreferredLocations,
		&p.SalaryMin, &p.SalaryMax, &p.Industries, &p.WorkArrangement)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.CandidateProfile{}, alerts.ErrNotFound
	}
	if err != nil {
		return model.CandidateProfile{}, fmt.Errorf("query candidate_profiles: %w", err)
	}

	rows, err := s.pool.Query(ctx,
		`SELECT name, level FROM profile_skills WHERE profile_id = $1 ORDER BY name`, userID)
	if err != nil {
		return model.CandidateProfile{}, fmt.Errorf("query profile_skills: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var skill model.ProfileSkill
		if err := rows.Scan(&skill.Name, &skill.Level); err != nil {
			return model.CandidateProfile{}, fmt.Errorf("scan profile_skills: %w", err)
		}
		p.Skills = append(p.Skills, skill)
	}
	return p, rows.Err()
}

// PostgresCatalog reads learning resources from PostgreSQL.
type PostgresCatalog struct {
	pool *pgxpool.Pool
}

// NewPostgresCatalog returns a learning catalog over the given pool.
func NewPostgresCatalog(pool *pgxpool.Pool) *PostgresCatalog {
	return &PostgresCatalog{pool: pool}
}

// Lookup fetches the resources registered for a skill, case-insensitively.
func (c *PostgresCatalog) Lookup(ctx context.Context, skill string) ([]model.LearningResource, error) {
	rows, err := c.pool.Query(ctx,
		`SELECT title, type, url, COALESCE(provider, ''), COALESCE(duration, ''),
		        COALESCE(difficulty, ''), COALESCE(cost, '')
		 FROM learning_resources
		 WHERE LOWER(skill) = LOWER($1)
		 ORDER BY difficulty, title`, skill)
	if err != nil {
		return nil, fmt.Errorf("query learning_resources: %w", err)
	}
	defer rows.Close()

	var resources []model.LearningResource
	for rows.Next() {
		var r model.LearningResource
		if err := rows.Scan(&r.Title, &r.Type, &r.URL, &r.Provider, &r.Duration, &r.Difficulty, &r.Cost); err != nil {
			return nil, fmt.Errorf("scan learning_resources: %w", err)
		}
		resources = append(resources, r)
	}
	return resources, rows.Err()
}
