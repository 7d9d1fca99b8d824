// Package matching implements the pure scoring engine: profile↔job match
// scoring, recommendation ranking, job-to-job similarity and skill gap
// analysis. Every function here is deterministic and free of I/O.
package matching

import (
	"fmt"
	"sort"
	"strings"

	"github.com/hzaheer48/access-job-recommendation-system-sub001/internal/model"
)

// ComputeMatch scores one candidate profile against one job posting.
//
// Skill names are compared case-insensitively. The base score is the fraction
// of required skills the candidate holds; each matched skill held below the
// required level subtracts 10 points per missing level. The final score is
// clamped to [0, 100]. A job with no required skills scores 100 with no gaps.
func ComputeMatch(profile model.CandidateProfile, job model.JobPosting) model.JobMatch {
	levels := make(map[string]int, len(profile.Skills))
	for _, s := range profile.Skills {
		levels[strings.ToLower(s.Name)] = model.ClampLevel(s.Level)
	}

	var (
		matching []string
		missing  []string
		gaps     []model.SkillGap
	)
	seen := make(map[string]bool, len(job.RequiredSkills))

	for _, req := range job.RequiredSkills {
		key := strings.ToLower(req.Name)
		if seen[key] {
			continue
		}
		seen[key] = true

		required := req.Level
		if required <= 0 {
			required = model.DefaultRequiredLevel
		}
		required = model.ClampLevel(required)

		current, held := levels[key]
		if !held {
			missing = append(missing, req.Name)
			continue
		}
		matching = append(matching, req.Name)
		if current < required {
			gaps = append(gaps, model.SkillGap{
				Skill:         req.Name,
				RequiredLevel: required,
				CurrentLevel:  current,
			})
		}
	}

	score := 100.0
	if len(seen) > 0 {
		score = float64(len(matching)) / float64(len(seen)) * 100
		for _, g := range gaps {
			score -= float64(g.RequiredLevel-g.CurrentLevel) * 10
		}
		if score < 0 {
			score = 0
		}
		if score > 100 {
			score = 100
		}
	}

	sortSkills(matching)
	sortSkills(missing)
	sort.Slice(gaps, func(i, j int) bool {
		return strings.ToLower(gaps[i].Skill) < strings.ToLower(gaps[j].Skill)
	})

	recs := make([]model.Recommendation, 0, len(missing)+len(gaps))
	for _, skill := range missing {
		recs = append(recs, model.Recommendation{
			Skill:    skill,
			Reason:   "required for this position",
			Priority: model.PriorityHigh,
		})
	}
	for _, g := range gaps {
		priority := model.PriorityMedium
		if g.RequiredLevel-g.CurrentLevel > 1 {
			priority = model.PriorityHigh
		}
		recs = append(recs, model.Recommendation{
			Skill:    g.Skill,
			Reason:   fmt.Sprintf("current level (%d) is below required level (%d)", g.CurrentLevel, g.RequiredLevel),
			Priority: priority,
		})
	}

	return model.JobMatch{
		Job:             job,
		MatchScore:      score,
		MatchingSkills:  matching,
		MissingSkills:   missing,
		SkillGaps:       gaps,
		Recommendations: recs,
	}
}

// sortSkills orders skill names case-insensitively so repeated calls on the
// same inputs produce identical output.
func sortSkills(skills []string) {
	sort.Slice(skills, func(i, j int) bool {
		return strings.ToLower(skills[i]) < strings.ToLower(skills[j])
	})
}
