package matching

import (
	"sort"
	"strings"

	"github.com/hzaheer48/access-job-recommendation-system-sub001/internal/model"
)

// SimilarJobs scores every other job in the corpus against job and returns
// the results sorted by similarity descending. The queried job itself is
// skipped by ID.
func SimilarJobs(job model.JobPosting, jobs []model.JobPosting) []model.JobSimilarity {
	out := make([]model.JobSimilarity, 0, len(jobs))
	for _, other := range jobs {
		if other.ID == job.ID {
			continue
		}
		out = append(out, computeSimilarity(job, other))
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].SimilarityScore > out[j].SimilarityScore
	})

	return out
}

// computeSimilarity blends skill overlap and requirement overlap, 50 points
// each. Requirement overlap counts the matched requirements of both sides
// over the combined list length, so the function is symmetric:
// computeSimilarity(a, b) and (b, a) agree on the score.
func computeSimilarity(a, b model.JobPosting) model.JobSimilarity {
	skillsA := skillNameSet(a.RequiredSkills)
	skillsB := skillNameSet(b.RequiredSkills)

	var commonSkills []string
	for _, req := range a.RequiredSkills {
		key := strings.ToLower(req.Name)
		if skillsA[key] && skillsB[key] {
			commonSkills = append(commonSkills, req.Name)
			delete(skillsA, key) // count each skill once
		}
	}
	sortSkills(commonSkills)

	matchedA := overlappingRequirements(a.Requirements, b.Requirements)
	matchedB := overlappingRequirements(b.Requirements, a.Requirements)

	seen := make(map[string]bool, len(matchedA))
	commonReqs := make([]string, 0, len(matchedA)+len(matchedB))
	for _, r := range matchedA {
		seen[strings.ToLower(r)] = true
		commonReqs = append(commonReqs, r)
	}
	for _, r := range matchedB {
		if !seen[strings.ToLower(r)] {
			commonReqs = append(commonReqs, r)
		}
	}

	score := 0.0
	if n := max(len(skillNameSet(a.RequiredSkills)), len(skillNameSet(b.RequiredSkills))); n > 0 {
		score += float64(len(commonSkills)) / float64(n) * 50
	}
	if n := len(a.Requirements) + len(b.Requirements); n > 0 {
		score += float64(len(matchedA)+len(matchedB)) / float64(n) * 50
	}

	return model.JobSimilarity{
		JobA:               a,
		JobB:               b,
		SimilarityScore:    score,
		CommonSkills:       commonSkills,
		CommonRequirements: commonReqs,
	}
}

// overlappingRequirements returns the entries of reqs that match any entry of
// others by case-insensitive containment in either direction.
func overlappingRequirements(reqs, others []string) []string {
	var matched []string
	for _, r := range reqs {
		if requirementOverlaps(r, others) {
			matched = append(matched, r)
		}
	}
	return matched
}

func requirementOverlaps(req string, others []string) bool {
	lower := strings.ToLower(req)
	for _, o := range others {
		ol := strings.ToLower(o)
		if strings.Contains(ol, lower) || strings.Contains(lower, ol) {
			return true
		}
	}
	return false
}

func skillNameSet(skills []model.SkillRequirement) map[string]bool {
	set := make(map[string]bool, len(skills))
	for _, s := range skills {
		set[strings.ToLower(s.Name)] = true
	}
	return set
}
