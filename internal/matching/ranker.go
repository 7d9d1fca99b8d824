package matching

import (
	"sort"

	"github.com/hzaheer48/access-job-recommendation-system-sub001/internal/model"
)

// RankRecommendations scores every active job in the corpus against the
// profile and returns the matches sorted by score descending. Ties are broken
// by posted date descending so repeated calls return the same order.
// Windowing/pagination is the caller's concern.
func RankRecommendations(profile model.CandidateProfile, jobs []model.JobPosting) []model.JobMatch {
	matches := make([]model.JobMatch, 0, len(jobs))
	for _, job := range jobs {
		if !job.IsActive {
			continue
		}
		matches = append(matches, ComputeMatch(profile, job))
	}

	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].MatchScore != matches[j].MatchScore {
			return matches[i].MatchScore > matches[j].MatchScore
		}
		return matches[i].Job.PostedDate.After(matches[j].Job.PostedDate)
	})

	return matches
}
