// Package model defines shared data structures for the matching service.
package model

import "time"

// MinSkillLevel and MaxSkillLevel bound proficiency and required levels.
// Values outside the range are clamped before any comparison.
const (
	MinSkillLevel = 0
	MaxSkillLevel = 5
)

// DefaultRequiredLevel is assumed when a job lists a skill without a level.
const DefaultRequiredLevel = 3

// ClampLevel forces a skill level into [MinSkillLevel, MaxSkillLevel].
func ClampLevel(level int) int {
	if level < MinSkillLevel {
		return MinSkillLevel
	}
	if level > MaxSkillLevel {
		return MaxSkillLevel
	}
	return level
}

// ProfileSkill is one skill a candidate holds, with a 1–5 proficiency level.
type ProfileSkill struct {
	Name  string `json:"name"`
	Level int    `json:"level"`
}

// CandidateProfile is a read-only snapshot of a job seeker's skills and
// preferences. The engine never mutates it.
type CandidateProfile struct {
	ID                 string         `json:"id"`
	Skills             []ProfileSkill `json:"skills"`
	DesiredRoles       []string       `json:"desiredRoles,omitempty"`
	PreferredLocations []string       `json:"preferredLocations,omitempty"`
	SalaryMin          int            `json:"salaryMin,omitempty"`
	SalaryMax          int            `json:"salaryMax,omitempty"`
	Industries         []string       `json:"industries,omitempty"`
	WorkArrangement    string         `json:"workArrangement,omitempty"`
}

// SkillRequirement is one skill a job requires. Level <= 0 means the posting
// did not state a level; DefaultRequiredLevel applies.
type SkillRequirement struct {
	Name  string `json:"name"`
	Level int    `json:"level"`
}

// JobPosting is an employer's open role. Read-only to the engine.
type JobPosting struct {
	ID              string             `json:"id"`
	Title           string             `json:"title"`
	Company         string             `json:"company"`
	Description     string             `json:"description"`
	RequiredSkills  []SkillRequirement `json:"requiredSkills"`
	Requirements    []string           `json:"requirements,omitempty"`
	Location        string             `json:"location"`
	SalaryMin       int                `json:"salaryMin,omitempty"`
	SalaryMax       int                `json:"salaryMax,omitempty"`
	JobType         string             `json:"jobType"`
	ExperienceLevel string             `json:"experienceLevel,omitempty"`
	Industry        string             `json:"industry,omitempty"`
	PostedDate      time.Time          `json:"postedDate"`
	Remote          bool               `json:"remote"`
	IsActive        bool               `json:"isActive"`
}

// SkillGap records a required skill the candidate holds below the required level.
type SkillGap struct {
	Skill         string `json:"skill"`
	RequiredLevel int    `json:"requiredLevel"`
	CurrentLevel  int    `json:"currentLevel"`
}

// RecommendationPriority orders skill recommendations.
type RecommendationPriority string

const (
	PriorityHigh   RecommendationPriority = "high"
	PriorityMedium RecommendationPriority = "medium"
	PriorityLow    RecommendationPriority = "low"
)

// Recommendation suggests a skill the candidate should acquire or improve.
type Recommendation struct {
	Skill    string                 `json:"skill"`
	Reason   string                 `json:"reason"`
	Priority RecommendationPriority `json:"priority"`
}

// JobMatch is the scored result of comparing one profile with one job.
// It is computed per query and never persisted.
type JobMatch struct {
	Job             JobPosting       `json:"job"`
	MatchScore      float64          `json:"matchScore"`
	MatchingSkills  []string         `json:"matchingSkills"`
	MissingSkills   []string         `json:"missingSkills"`
	SkillGaps       []SkillGap       `json:"skillGaps"`
	Recommendations []Recommendation `json:"recommendations"`
}

// JobSimilarity is the scored overlap between two job postings.
type JobSimilarity struct {
	JobA               JobPosting `json:"jobA"`
	JobB               JobPosting `json:"jobB"`
	SimilarityScore    float64    `json:"similarityScore"`
	CommonSkills       []string   `json:"commonSkills"`
	CommonRequirements []string   `json:"commonRequirements"`
}

// LearningResource points to external material for acquiring a skill.
// Content is owned by the learning catalog, never by the engine.
type LearningResource struct {
	Title      string `json:"title"`
	Type       string `json:"type"` // course, tutorial, documentation, book, video
	URL        string `json:"url"`
	Provider   string `json:"provider,omitempty"`
	Duration   string `json:"duration,omitempty"`
	Difficulty string `json:"difficulty,omitempty"`
	Cost       string `json:"cost,omitempty"`
}

// SkillDemand aggregates demand for one skill across a target job set.
type SkillDemand struct {
	Skill        string             `json:"skill"`
	Demand       int                `json:"demand"`
	AverageLevel float64            `json:"averageLevel"`
	JobIDs       []string           `json:"jobIds"`
	Resources    []LearningResource `json:"resources,omitempty"`
}

// SkillGapReport is the output of skill gap analysis over a job set.
type SkillGapReport struct {
	ProfileID string        `json:"profileId"`
	Skills    []SkillDemand `json:"skills"`
}

// Frequency controls how often an alert is evaluated.
type Frequency string

const (
	FrequencyDaily    Frequency = "daily"
	FrequencyWeekly   Frequency = "weekly"
	FrequencyMonthly  Frequency = "monthly"
	FrequencyRealtime Frequency = "realtime"
)

// AlertStatus is the lifecycle state of a JobAlert.
type AlertStatus string

const (
	AlertActive  AlertStatus = "active"
	AlertPaused  AlertStatus = "paused"
	AlertDeleted AlertStatus = "deleted"
)

// JobAlertCriteria is the saved search criteria of an alert. Empty fields are
// absent criteria and do not filter.
type JobAlertCriteria struct {
	Keywords        []string `json:"keywords,omitempty"`
	Locations       []string `json:"locations,omitempty"`
	JobTypes        []string `json:"jobTypes,omitempty"`
	Industries      []string `json:"industries,omitempty"`
	ExperienceLevel string   `json:"experienceLevel,omitempty"`
	SalaryMin       *int     `json:"salaryMin,omitempty"`
	Skills          []string `json:"skills,omitempty"`
	Companies       []string `json:"companies,omitempty"`
	Remote          *bool    `json:"remote,omitempty"`
}

// JobAlert is a saved, scheduled search owned by a user. Deleted alerts are
// soft-deleted: they stop producing matches but historical matches remain.
type JobAlert struct {
	ID            string           `json:"id"`
	UserID        string           `json:"userId"`
	Name          string           `json:"name"`
	Criteria      JobAlertCriteria `json:"criteria"`
	Frequency     Frequency        `json:"frequency"`
	Status        AlertStatus      `json:"status"`
	LastSent      *time.Time       `json:"lastSent,omitempty"`
	NextScheduled *time.Time       `json:"nextScheduled,omitempty"`
	CreatedAt     time.Time        `json:"createdAt"`
	UpdatedAt     time.Time        `json:"updatedAt"`
}

// MatchStatus is the lifecycle state of a JobAlertMatch.
type MatchStatus string

const (
	MatchNew       MatchStatus = "new"
	MatchViewed    MatchStatus = "viewed"
	MatchApplied   MatchStatus = "applied"
	MatchDismissed MatchStatus = "dismissed"
)

// JobAlertMatch links an alert to a job that passed its filters.
// At most one match exists per (alertId, jobId); rows are append-only.
type JobAlertMatch struct {
	ID           string      `json:"id"`
	AlertID      string      `json:"alertId"`
	JobID        string      `json:"jobId"`
	MatchScore   float64     `json:"matchScore"`
	MatchReasons []string    `json:"matchReasons"`
	CreatedAt    time.Time   `json:"createdAt"`
	Status       MatchStatus `json:"status"`
}

// JobAlertStats is a derived aggregate over a user's alerts and matches.
// It is recomputed from the live store on every call, never stored.
type JobAlertStats struct {
	TotalAlerts        int                 `json:"totalAlerts"`
	ActiveAlerts       int                 `json:"activeAlerts"`
	TotalMatches       int                 `json:"totalMatches"`
	MatchesByFrequency map[Frequency]int   `json:"matchesByFrequency"`
	MatchesByStatus    map[MatchStatus]int `json:"matchesByStatus"`
	LastUpdated        time.Time           `json:"lastUpdated"`
}

// Interval returns the periodic evaluation interval for a frequency.
// Realtime alerts have no periodic interval and return 0.
func (f Frequency) Interval() time.Duration {
	switch f {
	case FrequencyDaily:
		return 24 * time.Hour
	case FrequencyWeekly:
		return 7 * 24 * time.Hour
	case FrequencyMonthly:
		return 30 * 24 * time.Hour
	default:
		return 0
	}
}

// ValidFrequency reports whether f is a known frequency value.
func ValidFrequency(f Frequency) bool {
	switch f {
	case FrequencyDaily, FrequencyWeekly, FrequencyMonthly, FrequencyRealtime:
		return true
	}
	return false
}
