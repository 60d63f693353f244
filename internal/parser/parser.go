// Package parser reconstructs a well-typed portfolio document from arbitrary
// untrusted input, substituting safe defaults field by field.
package parser

import (
	"encoding/json"
	"time"

	"github.com/starford/othala/internal/apperr"
	"github.com/starford/othala/internal/models"
)

// Date layouts accepted for persisted date fields, tried in order.
var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02",
}

// ParseJSON unmarshals raw JSON bytes and delegates to Parse.
func ParseJSON(data []byte) (*models.Portfolio, error) {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, apperr.ErrInvalidFormat
	}
	return Parse(raw)
}

// Parse converts an untyped value (typically the result of decoding JSON)
// into a portfolio. Malformed or missing fields fall back to empty defaults;
// the only failure mode is a non-object top level.
//
// Every decoded record is collapsed so that imported documents render
// folded rather than as one overwhelming wall of sections.
func Parse(raw any) (*models.Portfolio, error) {
	obj, ok := raw.(map[string]any)
	if !ok || obj == nil {
		return nil, apperr.ErrInvalidFormat
	}

	p := models.NewPortfolio()
	p.Name = str(obj, "name")
	p.BornYear = str(obj, "bornYear")
	p.Pronouns = str(obj, "pronouns")
	p.Image = str(obj, "image")
	p.ShortBio = str(obj, "shortBio")
	p.LongBio = str(obj, "longBio")
	p.Title = str(obj, "title")
	p.Location = str(obj, "location")
	p.ResumeLink = str(obj, "resumeLink")

	p.Socials = decodeEach(obj, "socials", decodeSocial)
	p.JobsProjects = decodeEach(obj, "jobsProjects", decodeJobProject)
	p.Education = decodeEach(obj, "education", decodeEducation)
	p.Achievements = decodeEach(obj, "achievements", decodeAchievement)

	return p, nil
}

func decodeSocial(item map[string]any) models.Social {
	return models.Social{
		Platform: str(item, "platform"),
		URL:      str(item, "url"),
	}
}

func decodeJobProject(item map[string]any) models.JobProject {
	return models.JobProject{
		ID:          str(item, "id"),
		IsJob:       boolean(item, "isJob"),
		Title:       str(item, "title"),
		StartDate:   date(item, "startDate"),
		EndDate:     date(item, "endDate"),
		IsCurrent:   boolean(item, "isCurrent"),
		Description: str(item, "description"),
		Links:       strings(item, "links"),
		Skills:      strings(item, "skills"),
		IsCollapsed: true,
	}
}

func decodeEducation(item map[string]any) models.Education {
	return models.Education{
		ID:              str(item, "id"),
		InstitutionName: str(item, "institutionName"),
		CourseName:      str(item, "courseName"),
		Awarded:         str(item, "awarded"),
		StartDate:       date(item, "startDate"),
		EndDate:         date(item, "endDate"),
		IsCurrent:       boolean(item, "isCurrent"),
		Description:     str(item, "description"),
		Links:           strings(item, "links"),
		IsCollapsed:     true,
	}
}

func decodeAchievement(item map[string]any) models.Achievement {
	return models.Achievement{
		ID:          str(item, "id"),
		Name:        str(item, "name"),
		Description: str(item, "description"),
		DateAwarded: date(item, "dateAwarded"),
		Links:       strings(item, "links"),
		Skills:      strings(item, "skills"),
		IsCollapsed: true,
	}
}

// decodeEach maps every object element of obj[key] through decode. A value
// that is not an array of objects yields an empty slice.
func decodeEach[T any](obj map[string]any, key string, decode func(map[string]any) T) []T {
	arr, ok := obj[key].([]any)
	if !ok {
		return []T{}
	}
	items := make([]map[string]any, 0, len(arr))
	for _, el := range arr {
		m, ok := el.(map[string]any)
		if !ok {
			// One malformed element disqualifies the whole array, matching
			// the array-of-objects guard of the persisted format.
			return []T{}
		}
		items = append(items, m)
	}
	out := make([]T, len(items))
	for i, m := range items {
		out[i] = decode(m)
	}
	return out
}

func str(obj map[string]any, key string) string {
	s, _ := obj[key].(string)
	return s
}

func boolean(obj map[string]any, key string) bool {
	b, _ := obj[key].(bool)
	return b
}

// strings coerces obj[key] to a string slice; non-string elements become "".
func strings(obj map[string]any, key string) []string {
	arr, ok := obj[key].([]any)
	if !ok {
		return []string{}
	}
	out := make([]string, len(arr))
	for i, el := range arr {
		s, _ := el.(string)
		out[i] = s
	}
	return out
}

// date parses a date field. Only string representations are accepted; any
// other runtime type or an unparsable string yields nil.
func date(obj map[string]any, key string) *time.Time {
	s, ok := obj[key].(string)
	if !ok {
		return nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	return nil
}
