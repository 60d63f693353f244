// Package models defines the domain types for Othala.
package models

import (
	"time"

	"github.com/google/uuid"
)

// Portfolio is the root document: personal details plus four record
// collections. One portfolio per deployment.
type Portfolio struct {
	Name         string        `json:"name"`
	BornYear     string        `json:"bornYear"`
	Pronouns     string        `json:"pronouns"`
	Image        string        `json:"image"`
	ShortBio     string        `json:"shortBio"`
	LongBio      string        `json:"longBio"`
	Title        string        `json:"title"`
	Location     string        `json:"location"`
	ResumeLink   string        `json:"resumeLink"`
	Socials      []Social      `json:"socials"`
	JobsProjects []JobProject  `json:"jobsProjects"`
	Education    []Education   `json:"education"`
	Achievements []Achievement `json:"achievements"`
}

// Social is a link to an external profile.
type Social struct {
	Platform string `json:"platform"`
	URL      string `json:"url"`
}

// JobProject is a single job or personal project entry.
// EndDate nil with IsCurrent true means the entry is ongoing.
type JobProject struct {
	ID          string     `json:"id"`
	IsJob       bool       `json:"isJob"`
	Title       string     `json:"title"`
	StartDate   *time.Time `json:"startDate"`
	EndDate     *time.Time `json:"endDate"`
	IsCurrent   bool       `json:"isCurrent"`
	Description string     `json:"description"`
	Links       []string   `json:"links"`
	Skills      []string   `json:"skills"`
	IsCollapsed bool       `json:"isCollapsed"`
}

// Education is a single course/degree entry.
type Education struct {
	ID              string     `json:"id"`
	InstitutionName string     `json:"institutionName"`
	CourseName      string     `json:"courseName"`
	Awarded         string     `json:"awarded"`
	StartDate       *time.Time `json:"startDate"`
	EndDate         *time.Time `json:"endDate"`
	IsCurrent       bool       `json:"isCurrent"`
	Description     string     `json:"description"`
	Links           []string   `json:"links"`
	IsCollapsed     bool       `json:"isCollapsed"`
}

// Achievement is a single dated award or milestone.
type Achievement struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	DateAwarded *time.Time `json:"dateAwarded"`
	Links       []string   `json:"links"`
	Skills      []string   `json:"skills"`
	IsCollapsed bool       `json:"isCollapsed"`
}

// NewPortfolio returns an empty portfolio with non-nil collections, ready
// for an editing session.
func NewPortfolio() *Portfolio {
	return &Portfolio{
		Socials:      []Social{},
		JobsProjects: []JobProject{},
		Education:    []Education{},
		Achievements: []Achievement{},
	}
}

// NewJobProject creates a blank job/project entry with a fresh id.
func NewJobProject() JobProject {
	return JobProject{
		ID:     uuid.NewString(),
		IsJob:  true,
		Links:  []string{},
		Skills: []string{},
	}
}

// NewEducation creates a blank education entry with a fresh id.
func NewEducation() Education {
	return Education{
		ID:    uuid.NewString(),
		Links: []string{},
	}
}

// NewAchievement creates a blank achievement entry with a fresh id.
func NewAchievement() Achievement {
	return Achievement{
		ID:     uuid.NewString(),
		Links:  []string{},
		Skills: []string{},
	}
}

// EnforceCurrent applies the current-flag invariant: an ongoing entry has
// no end date. Setting IsCurrent clears any end date already present.
func (j *JobProject) EnforceCurrent() {
	if j.IsCurrent {
		j.EndDate = nil
	}
}

// EnforceCurrent applies the current-flag invariant, same as for jobs.
func (e *Education) EnforceCurrent() {
	if e.IsCurrent {
		e.EndDate = nil
	}
}

// Clone returns a deep copy. Read paths (filter, resolve, render) work on
// clones so the editing session can keep mutating the original.
func (p *Portfolio) Clone() *Portfolio {
	out := *p
	out.Socials = append([]Social(nil), p.Socials...)
	out.JobsProjects = make([]JobProject, len(p.JobsProjects))
	for i, j := range p.JobsProjects {
		j.StartDate = copyTime(j.StartDate)
		j.EndDate = copyTime(j.EndDate)
		j.Links = append([]string(nil), j.Links...)
		j.Skills = append([]string(nil), j.Skills...)
		out.JobsProjects[i] = j
	}
	out.Education = make([]Education, len(p.Education))
	for i, e := range p.Education {
		e.StartDate = copyTime(e.StartDate)
		e.EndDate = copyTime(e.EndDate)
		e.Links = append([]string(nil), e.Links...)
		out.Education[i] = e
	}
	out.Achievements = make([]Achievement, len(p.Achievements))
	for i, a := range p.Achievements {
		a.DateAwarded = copyTime(a.DateAwarded)
		a.Links = append([]string(nil), a.Links...)
		a.Skills = append([]string(nil), a.Skills...)
		out.Achievements[i] = a
	}
	return &out
}

// AllSkills returns the deduplicated union of skills across jobs/projects
// and achievements, in first-seen order.
func (p *Portfolio) AllSkills() []string {
	seen := make(map[string]struct{})
	var out []string
	add := func(skills []string) {
		for _, s := range skills {
			if _, dup := seen[s]; dup || s == "" {
				continue
			}
			seen[s] = struct{}{}
			out = append(out, s)
		}
	}
	for _, j := range p.JobsProjects {
		add(j.Skills)
	}
	for _, a := range p.Achievements {
		add(a.Skills)
	}
	return out
}

func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}
