package alerts

import (
	"fmt"
	"strings"

	"github.com/hzaheer48/access-job-recommendation-system-sub001/internal/model"
)

// MatchesCriteria applies an alert's hard filter to one job. Every present
// criterion must pass; absent criteria are skipped. Returns the human-readable
// reasons collected from the criteria that matched.
//
// Hard filters are pass/fail only; the match score computed later is used for
// ordering, never as an extra cutoff.
func MatchesCriteria(c model.JobAlertCriteria, job model.JobPosting) (bool, []string) {
	var reasons []string

	if len(c.Keywords) > 0 {
		matched := matchedKeywords(c.Keywords, job)
		if len(matched) == 0 {
			return false, nil
		}
		reasons = append(reasons, "Keyword match: "+strings.Join(matched, ", "))
	}

	if len(c.Locations) > 0 {
		loc := matchedLocation(c.Locations, job.Location)
		if loc == "" {
			return false, nil
		}
		reasons = append(reasons, "Location match: "+loc)
	}

	if len(c.JobTypes) > 0 {
		if !containsFold(c.JobTypes, job.JobType) {
			return false, nil
		}
		reasons = append(reasons, "Job type match: "+job.JobType)
	}

	if len(c.Industries) > 0 {
		if !containsFold(c.Industries, job.Industry) {
			return false, nil
		}
		reasons = append(reasons, "Industry match: "+job.Industry)
	}

	if c.ExperienceLevel != "" {
		if !strings.EqualFold(c.ExperienceLevel, job.ExperienceLevel) {
			return false, nil
		}
		reasons = append(reasons, "Experience level match: "+job.ExperienceLevel)
	}

	if c.SalaryMin != nil {
		// A job without salary data fails a present floor.
		if job.SalaryMin < *c.SalaryMin {
			return false, nil
		}
		reasons = append(reasons, fmt.Sprintf("Salary match: %d meets minimum %d", job.SalaryMin, *c.SalaryMin))
	}

	if len(c.Companies) > 0 {
		if !containsFold(c.Companies, job.Company) {
			return false, nil
		}
		reasons = append(reasons, "Company match: "+job.Company)
	}

	if c.Remote != nil {
		if job.Remote != *c.Remote {
			return false, nil
		}
		if *c.Remote {
			reasons = append(reasons, "Remote position")
		} else {
			reasons = append(reasons, "On-site position")
		}
	}

	return true, reasons
}

// matchedKeywords returns the keywords that appear (case-insensitive) in the
// job's title, description, company name or required skill names.
func matchedKeywords(keywords []string, job model.JobPosting) []string {
	var parts []string
	parts = append(parts, job.Title, job.Company, job.Description)
	for _, s := range job.RequiredSkills {
		parts = append(parts, s.Name)
	}
	combined := strings.ToLower(strings.Join(parts, " "))

	var matched []string
	for _, kw := range keywords {
		if kw == "" {
			continue
		}
		if strings.Contains(combined, strings.ToLower(kw)) {
			matched = append(matched, kw)
		}
	}
	return matched
}

// matchedLocation returns the first criterion location contained in the job
// location, or "".
func matchedLocation(locations []string, jobLocation string) string {
	lower := strings.ToLower(jobLocation)
	for _, loc := range locations {
		if loc == "" {
			continue
		}
		if strings.Contains(lower, strings.ToLower(loc)) {
			return loc
		}
	}
	return ""
}

func containsFold(values []string, target string) bool {
	for _, v := range values {
		if strings.EqualFold(v, target) {
			return true
		}
	}
	return false
}
