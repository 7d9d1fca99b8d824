package matching_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/hzaheer48/access-job-recommendation-system-sub001/internal/matching"
	"github.com/hzaheer48/access-job-recommendation-system-sub001/internal/model"
)

type fakeCatalog struct {
	resources map[string][]model.LearningResource
	fail      bool
}

func (c *fakeCatalog) Lookup(_ context.Context, skill string) ([]model.LearningResource, error) {
	if c.fail {
		return nil, fmt.Errorf("catalog unavailable")
	}
	return c.resources[skill], nil
}

func TestAnalyzeSkillGaps_AggregatesDemand(t *testing.T) {
	p := profile()
	jobs := []model.JobPosting{
		skillJob("a", []string{"Go", "Docker"}),
		skillJob("b", []string{"Go"}),
	}

	report, err := matching.AnalyzeSkillGaps(context.Background(), p, jobs, nil)
	if err != nil {
		t.Fatalf("AnalyzeSkillGaps: %v", err)
	}
	if len(report.Skills) != 2 {
		t.Fatalf("got %d skills, want 2", len(report.Skills))
	}

	top := report.Skills[0]
	if top.Skill != "Go" || top.Demand != 2 {
		t.Errorf("top = %+v, want Go with demand 2", top)
	}
	if len(top.JobIDs) != 2 {
		t.Errorf("JobIDs = %v, want both jobs", top.JobIDs)
	}
}

func TestAnalyzeSkillGaps_ExcludesHeldSkillsByNameOnly(t *testing.T) {
	// A held skill is excluded even when its level is far below demand.
	p := profile(model.ProfileSkill{Name: "go", Level: 1})
	jobs := []model.JobPosting{
		{ID: "a", RequiredSkills: []model.SkillRequirement{{Name: "Go", Level: 5}}, IsActive: true},
	}

	report, err := matching.AnalyzeSkillGaps(context.Background(), p, jobs, nil)
	if err != nil {
		t.Fatalf("AnalyzeSkillGaps: %v", err)
	}
	if len(report.Skills) != 0 {
		t.Errorf("Skills = %v, want held skills excluded regardless of level", report.Skills)
	}
}

func TestAnalyzeSkillGaps_AverageLevel(t *testing.T) {
	jobs := []model.JobPosting{
		{ID: "a", RequiredSkills: []model.SkillRequirement{{Name: "Kafka", Level: 2}}, IsActive: true},
		{ID: "b", RequiredSkills: []model.SkillRequirement{{Name: "Kafka", Level: 4}}, IsActive: true},
		{ID: "c", RequiredSkills: []model.SkillRequirement{{Name: "Kafka"}}, IsActive: true}, // defaults to 3
	}

	report, err := matching.AnalyzeSkillGaps(context.Background(), profile(), jobs, nil)
	if err != nil {
		t.Fatalf("AnalyzeSkillGaps: %v", err)
	}
	if got := report.Skills[0].AverageLevel; got != 3 {
		t.Errorf("AverageLevel = %v, want 3 ((2+4+3)/3)", got)
	}
}

func TestAnalyzeSkillGaps_CatalogEnrichment(t *testing.T) {
	catalog := &fakeCatalog{resources: map[string][]model.LearningResource{
		"Kubernetes": {{Title: "Kubernetes Basics", Type: "course", URL: "https://example.com/k8s"}},
	}}
	jobs := []model.JobPosting{skillJob("a", []string{"Kubernetes"})}

	report, err := matching.AnalyzeSkillGaps(context.Background(), profile(), jobs, catalog)
	if err != nil {
		t.Fatalf("AnalyzeSkillGaps: %v", err)
	}
	if len(report.Skills[0].Resources) != 1 {
		t.Errorf("Resources = %v, want the catalog entry attached", report.Skills[0].Resources)
	}
}

func TestAnalyzeSkillGaps_CatalogFailureIsNotFatal(t *testing.T) {
	jobs := []model.JobPosting{skillJob("a", []string{"Kubernetes"})}

	report, err := matching.AnalyzeSkillGaps(context.Background(), profile(), jobs, &fakeCatalog{fail: true})
	if err != nil {
		t.Fatalf("AnalyzeSkillGaps: %v, want lookup failures swallowed", err)
	}
	if len(report.Skills) != 1 || report.Skills[0].Resources != nil {
		t.Errorf("Skills = %+v, want entry without resources", report.Skills)
	}
}

func TestAnalyzeSkillGaps_SortedByDemandThenName(t *testing.T) {
	jobs := []model.JobPosting{
		skillJob("a", []string{"Zig", "Ada"}),
		skillJob("b", []string{"Ada", "Go"}),
		skillJob("c", []string{"Go"}),
	}

	report, err := matching.AnalyzeSkillGaps(context.Background(), profile(), jobs, nil)
	if err != nil {
		t.Fatalf("AnalyzeSkillGaps: %v", err)
	}
	var got []string
	for _, s := range report.Skills {
		got = append(got, s.Skill)
	}
	want := []string{"Ada", "Go", "Zig"} // demand 2, 2, 1; Ada before Go by name
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order = %v, want %v", got, want)
		}
	}
}
