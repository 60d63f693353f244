// Package filter answers multi-criteria searches over a portfolio document
// and resolves result references back to full records.
package filter

import (
	"strings"
	"time"

	"github.com/starford/othala/internal/models"
)

// Record type tags carried by search results.
const (
	TypeJobProject  = "job_project"
	TypeEducation   = "education"
	TypeAchievement = "achievement"
)

// Criteria is a set of AND-combined predicates. A zero-value field means
// the predicate is vacuously true.
type Criteria struct {
	Keyword      string
	Start        *time.Time
	End          *time.Time
	Skills       []string
	RequireLinks bool
}

// ResultRef is a lightweight, display-ready reference to a matching record.
// Hydrate it into a full record with ResolveByID.
type ResultRef struct {
	Type   string `json:"type"`
	ID     string `json:"id"`
	Header string `json:"header"`
	Body   string `json:"body"`
}

// Resolved is a full record looked up by id. Exactly one of the record
// pointers is set, indicated by Type.
type Resolved struct {
	Type        string              `json:"type"`
	JobProject  *models.JobProject  `json:"jobProject,omitempty"`
	Education   *models.Education   `json:"education,omitempty"`
	Achievement *models.Achievement `json:"achievement,omitempty"`
}

// Filter scans every collection in fixed order (jobs/projects, education,
// achievements) and returns references for records matching all criteria.
// Result order is document order, never relevance-sorted.
func Filter(doc *models.Portfolio, c Criteria) []ResultRef {
	out := []ResultRef{}

	for _, j := range doc.JobsProjects {
		if matchSkills(c, j.Skills) &&
			inRange(c, j.StartDate, j.EndDate) &&
			matchKeyword(c, j.Title, j.Description) &&
			matchLinks(c, j.Links) {
			out = append(out, ResultRef{Type: TypeJobProject, ID: j.ID, Header: j.Title, Body: j.Description})
		}
	}

	for _, e := range doc.Education {
		// Education has no skills field; its links stand in as the skill
		// pool (see DESIGN.md).
		if matchSkills(c, e.Links) &&
			inRange(c, e.StartDate, e.EndDate) &&
			matchKeyword(c, e.InstitutionName, e.Description) &&
			matchLinks(c, e.Links) {
			out = append(out, ResultRef{Type: TypeEducation, ID: e.ID, Header: e.CourseName, Body: e.Description})
		}
	}

	for _, a := range doc.Achievements {
		if matchSkills(c, a.Skills) &&
			inRange(c, a.DateAwarded, a.DateAwarded) &&
			matchKeyword(c, a.Name, a.Description) &&
			matchLinks(c, a.Links) {
			out = append(out, ResultRef{Type: TypeAchievement, ID: a.ID, Header: a.Name, Body: a.Description})
		}
	}

	return out
}

// ResolveByID returns the full record for id, or nil if no record matches.
// Scan order is fixed: achievements, education, jobs/projects.
func ResolveByID(doc *models.Portfolio, id string) *Resolved {
	for i := range doc.Achievements {
		if doc.Achievements[i].ID == id {
			return &Resolved{Type: TypeAchievement, Achievement: &doc.Achievements[i]}
		}
	}
	for i := range doc.Education {
		if doc.Education[i].ID == id {
			return &Resolved{Type: TypeEducation, Education: &doc.Education[i]}
		}
	}
	for i := range doc.JobsProjects {
		if doc.JobsProjects[i].ID == id {
			return &Resolved{Type: TypeJobProject, JobProject: &doc.JobsProjects[i]}
		}
	}
	return nil
}

// matchKeyword splits the keyword on whitespace and succeeds when any part
// is a case-insensitive substring of the header or body.
func matchKeyword(c Criteria, header, body string) bool {
	parts := strings.Fields(strings.ToLower(c.Keyword))
	if len(parts) == 0 {
		return true
	}
	header = strings.ToLower(header)
	body = strings.ToLower(body)
	for _, part := range parts {
		if strings.Contains(header, part) || strings.Contains(body, part) {
			return true
		}
	}
	return false
}

// matchSkills succeeds when the criteria skill set intersects the record's,
// case-insensitively.
func matchSkills(c Criteria, recordSkills []string) bool {
	if len(c.Skills) == 0 {
		return true
	}
	have := make(map[string]struct{}, len(recordSkills))
	for _, s := range recordSkills {
		have[strings.ToLower(s)] = struct{}{}
	}
	for _, s := range c.Skills {
		if _, ok := have[strings.ToLower(s)]; ok {
			return true
		}
	}
	return false
}

// inRange checks date-range overlap. A record without a start is treated as
// starting at the epoch; without an end, as ongoing (ending now). Overlap
// holds when either record endpoint falls inside the queried range, or the
// record fully spans it.
func inRange(c Criteria, recordStart, recordEnd *time.Time) bool {
	if c.Start == nil && c.End == nil {
		return true
	}

	start := time.Unix(0, 0).UTC()
	if recordStart != nil {
		start = *recordStart
	}
	end := time.Now()
	if recordEnd != nil {
		end = *recordEnd
	}

	rangeStart := time.Unix(0, 0).UTC()
	if c.Start != nil {
		rangeStart = *c.Start
	}
	rangeEnd := time.Now()
	if c.End != nil {
		rangeEnd = *c.End
	}

	if !start.Before(rangeStart) && !start.After(rangeEnd) {
		return true
	}
	if !end.Before(rangeStart) && !end.After(rangeEnd) {
		return true
	}
	return !start.After(rangeStart) && !end.Before(rangeEnd)
}

// matchLinks succeeds unless the criteria require links and the record has
// none.
func matchLinks(c Criteria, links []string) bool {
	return !c.RequireLinks || len(links) > 0
}
