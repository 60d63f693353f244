package models

import (
	"testing"
	"time"
)

func TestEnforceCurrent_ClearsEndDate(t *testing.T) {
	end := time.Date(2023, 5, 1, 0, 0, 0, 0, time.UTC)
	j := NewJobProject()
	j.EndDate = &end
	j.IsCurrent = true
	j.EnforceCurrent()
	if j.EndDate != nil {
		t.Errorf("end date = %v, want nil", j.EndDate)
	}
}

func TestEnforceCurrent_KeepsEndDateWhenNotCurrent(t *testing.T) {
	end := time.Date(2023, 5, 1, 0, 0, 0, 0, time.UTC)
	e := NewEducation()
	e.EndDate = &end
	e.EnforceCurrent()
	if e.EndDate == nil {
		t.Error("end date cleared for non-current entry")
	}
}

func TestNewRecords_UniqueIDs(t *testing.T) {
	a := NewJobProject()
	b := NewJobProject()
	if a.ID == "" || a.ID == b.ID {
		t.Errorf("ids not unique: %q vs %q", a.ID, b.ID)
	}
}

func TestClone_Independent(t *testing.T) {
	start := time.Date(2020, 1, 2, 0, 0, 0, 0, time.UTC)
	p := NewPortfolio()
	p.Name = "Ada"
	j := NewJobProject()
	j.Title = "Engine"
	j.StartDate = &start
	j.Skills = []string{"go"}
	p.JobsProjects = append(p.JobsProjects, j)

	c := p.Clone()
	c.JobsProjects[0].Title = "Changed"
	c.JobsProjects[0].Skills[0] = "rust"
	*c.JobsProjects[0].StartDate = start.AddDate(1, 0, 0)

	if p.JobsProjects[0].Title != "Engine" {
		t.Error("clone shares title")
	}
	if p.JobsProjects[0].Skills[0] != "go" {
		t.Error("clone shares skills slice")
	}
	if !p.JobsProjects[0].StartDate.Equal(start) {
		t.Error("clone shares date pointer")
	}
}

func TestAllSkills_DedupedInOrder(t *testing.T) {
	p := NewPortfolio()
	j := NewJobProject()
	j.Skills = []string{"go", "sql"}
	p.JobsProjects = append(p.JobsProjects, j)
	a := NewAchievement()
	a.Skills = []string{"sql", "docker"}
	p.Achievements = append(p.Achievements, a)

	got := p.AllSkills()
	want := []string{"go", "sql", "docker"}
	if len(got) != len(want) {
		t.Fatalf("skills = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("skills[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}
