package filter

import (
	"testing"
	"time"

	"github.com/starford/othala/internal/models"
)

func day(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

// testDoc builds a document with one record per collection.
func testDoc() *models.Portfolio {
	p := models.NewPortfolio()
	p.JobsProjects = []models.JobProject{{
		ID:          "job-1",
		IsJob:       true,
		Title:       "Backend Engineer",
		StartDate:   day(2020, 1, 1),
		EndDate:     day(2020, 6, 1),
		Description: "Built APIs",
		Links:       []string{"https://work.example"},
		Skills:      []string{"Go", "SQL"},
	}}
	p.Education = []models.Education{{
		ID:              "edu-1",
		InstitutionName: "MIT",
		CourseName:      "Computer Science",
		StartDate:       day(2016, 9, 1),
		EndDate:         day(2019, 6, 1),
		Description:     "Undergraduate degree",
		Links:           []string{"https://mit.example"},
	}}
	p.Achievements = []models.Achievement{{
		ID:          "ach-1",
		Name:        "Hackathon Winner",
		DateAwarded: day(2020, 3, 15),
		Description: "First place",
		Links:       []string{},
		Skills:      []string{"go"},
	}}
	return p
}

func TestFilter_EmptyCriteriaReturnsAllInOrder(t *testing.T) {
	got := Filter(testDoc(), Criteria{})
	if len(got) != 3 {
		t.Fatalf("len = %d, want 3", len(got))
	}
	wantTypes := []string{TypeJobProject, TypeEducation, TypeAchievement}
	for i, w := range wantTypes {
		if got[i].Type != w {
			t.Errorf("result[%d].Type = %q, want %q", i, got[i].Type, w)
		}
	}
	if got[0].Header != "Backend Engineer" || got[0].Body != "Built APIs" {
		t.Errorf("job ref = %+v", got[0])
	}
	if got[1].Header != "Computer Science" {
		t.Errorf("education header = %q, want course name", got[1].Header)
	}
}

func TestFilter_NonexistentSkillReturnsNothing(t *testing.T) {
	got := Filter(testDoc(), Criteria{Skills: []string{"nonexistent-xyz"}})
	if len(got) != 0 {
		t.Errorf("got %v, want empty", got)
	}
}

func TestFilter_SkillMatchCaseInsensitive(t *testing.T) {
	got := Filter(testDoc(), Criteria{Skills: []string{"GO"}})
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2 (job + achievement)", len(got))
	}
	if got[0].ID != "job-1" || got[1].ID != "ach-1" {
		t.Errorf("ids = %q, %q", got[0].ID, got[1].ID)
	}
}

func TestFilter_EducationSkillPoolIsLinks(t *testing.T) {
	got := Filter(testDoc(), Criteria{Skills: []string{"https://mit.example"}})
	if len(got) != 1 || got[0].ID != "edu-1" {
		t.Errorf("got %v, want the education record", got)
	}
}

func TestFilter_KeywordTokenized(t *testing.T) {
	// "engineer intern": token "engineer" substrings the title even though
	// the full phrase does not.
	got := Filter(testDoc(), Criteria{Keyword: "engineer intern"})
	if len(got) != 1 || got[0].ID != "job-1" {
		t.Errorf("got %v, want job-1", got)
	}
}

func TestFilter_KeywordMatchesBody(t *testing.T) {
	got := Filter(testDoc(), Criteria{Keyword: "undergraduate"})
	if len(got) != 1 || got[0].ID != "edu-1" {
		t.Errorf("got %v, want edu-1", got)
	}
}

func TestFilter_DateRangeInsideRecordSpan(t *testing.T) {
	got := Filter(testDoc(), Criteria{Start: day(2020, 3, 1), End: day(2020, 4, 1)})
	// Job spans the range; achievement date falls inside it.
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2: %v", len(got), got)
	}
	if got[0].ID != "job-1" || got[1].ID != "ach-1" {
		t.Errorf("ids = %q, %q", got[0].ID, got[1].ID)
	}
}

func TestFilter_OngoingRecordEndsNow(t *testing.T) {
	doc := testDoc()
	doc.JobsProjects[0].EndDate = nil
	doc.JobsProjects[0].IsCurrent = true
	got := Filter(doc, Criteria{Start: day(2024, 1, 1), End: day(2024, 12, 31)})
	found := false
	for _, r := range got {
		if r.ID == "job-1" {
			found = true
		}
	}
	if !found {
		t.Errorf("ongoing job should match a recent range, got %v", got)
	}
}

func TestFilter_RequireLinks(t *testing.T) {
	got := Filter(testDoc(), Criteria{RequireLinks: true})
	for _, r := range got {
		if r.ID == "ach-1" {
			t.Errorf("achievement without links matched: %v", got)
		}
	}
	if len(got) != 2 {
		t.Errorf("len = %d, want 2", len(got))
	}
}

func TestFilter_CriteriaAreANDCombined(t *testing.T) {
	// Skill "go" matches job and achievement; keyword "undergraduate"
	// matches only education. No record satisfies both.
	got := Filter(testDoc(), Criteria{Skills: []string{"go"}, Keyword: "undergraduate"})
	if len(got) != 0 {
		t.Errorf("got %v, want empty", got)
	}
}

func TestResolveByID_Hit(t *testing.T) {
	doc := testDoc()
	r := ResolveByID(doc, "edu-1")
	if r == nil || r.Type != TypeEducation || r.Education == nil {
		t.Fatalf("resolved = %+v", r)
	}
	if r.Education.CourseName != "Computer Science" {
		t.Errorf("course = %q", r.Education.CourseName)
	}
}

func TestResolveByID_Miss(t *testing.T) {
	if r := ResolveByID(testDoc(), "nonexistent-id"); r != nil {
		t.Errorf("resolved = %+v, want nil", r)
	}
}

func TestResolveByID_AchievementScannedFirst(t *testing.T) {
	doc := testDoc()
	doc.Achievements[0].ID = "dup"
	doc.JobsProjects[0].ID = "dup"
	r := ResolveByID(doc, "dup")
	if r == nil || r.Type != TypeAchievement {
		t.Errorf("resolved = %+v, want achievement first", r)
	}
}
