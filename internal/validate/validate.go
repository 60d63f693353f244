// Package validate checks portfolio documents against the required-field
// rules and normalises dates to day granularity as it goes.
package validate

import (
	"fmt"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/starford/othala/internal/models"
)

// Policy is the versioned rule set the validator runs under. Observed
// revisions of the document format disagree on two checks, so both are
// switchable instead of forked.
type Policy struct {
	// RequireDescription makes job/project descriptions mandatory.
	RequireDescription bool
	// RestrictSocialPlatforms enforces the platform allow-list on socials.
	RestrictSocialPlatforms bool
	// SocialPlatforms is the allow-list, matched case-insensitively after
	// trimming. Only consulted when RestrictSocialPlatforms is set.
	SocialPlatforms []string
}

// DefaultPolicy is the lenient rule set: no description requirement, no
// platform restriction.
func DefaultPolicy() Policy {
	return Policy{
		SocialPlatforms: []string{"twitter", "github", "email", "instagram", "facebook", "linkedin"},
	}
}

// Validate checks doc and returns nil or the first failure as a
// human-readable error. Checks run in a fixed order and short-circuit, so
// the reported message is deterministic.
//
// Side effect: date fields of records whose own checks passed are
// normalised in place to day granularity, and skill lists are re-split on
// commas. Callers should treat doc as mutated after a successful call.
func Validate(doc *models.Portfolio, pol Policy) error {
	if err := requireText(doc.Name, "Name is required."); err != nil {
		return err
	}
	if err := requireText(doc.Image, "Image is required."); err != nil {
		return err
	}
	if err := requireText(doc.ShortBio, "Short bio is required."); err != nil {
		return err
	}
	if err := requireText(doc.Title, "Title is required."); err != nil {
		return err
	}
	if err := requireText(doc.Location, "Location is required."); err != nil {
		return err
	}

	if pol.RestrictSocialPlatforms {
		if err := validateSocials(doc.Socials, pol.SocialPlatforms); err != nil {
			return err
		}
	}

	for i := range doc.JobsProjects {
		if err := validateJobProject(&doc.JobsProjects[i], i+1, pol); err != nil {
			return err
		}
	}
	for i := range doc.Education {
		if err := validateEducation(&doc.Education[i], i+1); err != nil {
			return err
		}
	}
	for i := range doc.Achievements {
		if err := validateAchievement(&doc.Achievements[i], i+1); err != nil {
			return err
		}
	}
	return nil
}

func validateSocials(socials []models.Social, allowed []string) error {
	in := make([]any, len(allowed))
	for i, p := range allowed {
		in[i] = strings.ToLower(p)
	}
	for i, s := range socials {
		pos := i + 1
		platform := strings.ToLower(strings.TrimSpace(s.Platform))
		if err := validation.Validate(platform,
			validation.Required.Error(fmt.Sprintf("Social platform is required at position %d.", pos)),
			validation.In(in...).Error(fmt.Sprintf("Social platform %q is not supported at position %d.", s.Platform, pos)),
		); err != nil {
			return err
		}
		if err := requireText(s.URL, fmt.Sprintf("Social URL is required at position %d.", pos)); err != nil {
			return err
		}
	}
	return nil
}

func validateJobProject(j *models.JobProject, pos int, pol Policy) error {
	if err := requireText(j.Title, fmt.Sprintf("Job/Project title is required at position %d.", pos)); err != nil {
		return err
	}
	if pol.RequireDescription {
		if err := requireText(j.Description, fmt.Sprintf("Job/Project description is required at position %d.", pos)); err != nil {
			return err
		}
	}
	if err := validation.Validate(j.StartDate,
		validation.NotNil.Error(fmt.Sprintf("Job/Project start date is required at position %d.", pos))); err != nil {
		return err
	}
	if !j.IsCurrent {
		if err := validation.Validate(j.EndDate,
			validation.NotNil.Error(fmt.Sprintf("Job/Project end date is required if not current at position %d.", pos))); err != nil {
			return err
		}
	}
	normalizeDay(j.StartDate)
	normalizeDay(j.EndDate)
	j.Skills = SplitSkills(j.Skills)
	return nil
}

func validateEducation(e *models.Education, pos int) error {
	if err := requireText(e.InstitutionName, fmt.Sprintf("Institution name is required at position %d.", pos)); err != nil {
		return err
	}
	if err := requireText(e.CourseName, fmt.Sprintf("Course name is required at position %d.", pos)); err != nil {
		return err
	}
	if err := validation.Validate(e.StartDate,
		validation.NotNil.Error(fmt.Sprintf("Education start date is required at position %d.", pos))); err != nil {
		return err
	}
	if !e.IsCurrent {
		if err := validation.Validate(e.EndDate,
			validation.NotNil.Error(fmt.Sprintf("Education end date is required if not current at position %d.", pos))); err != nil {
			return err
		}
	}
	normalizeDay(e.StartDate)
	normalizeDay(e.EndDate)
	return nil
}

func validateAchievement(a *models.Achievement, pos int) error {
	if err := requireText(a.Name, fmt.Sprintf("Achievement name is required at position %d.", pos)); err != nil {
		return err
	}
	if err := validation.Validate(a.DateAwarded,
		validation.NotNil.Error(fmt.Sprintf("Achievement date awarded is required at position %d.", pos))); err != nil {
		return err
	}
	normalizeDay(a.DateAwarded)
	a.Skills = SplitSkills(a.Skills)
	return nil
}

func requireText(value, msg string) error {
	return validation.Validate(strings.TrimSpace(value), validation.Required.Error(msg))
}

// SplitSkills re-splits each entry on commas and trims the fragments,
// discarding empty ones. A single pasted "go, sql, docker" entry becomes
// three skills.
func SplitSkills(skills []string) []string {
	out := make([]string, 0, len(skills))
	for _, entry := range skills {
		for _, part := range strings.Split(entry, ",") {
			if trimmed := strings.TrimSpace(part); trimmed != "" {
				out = append(out, trimmed)
			}
		}
	}
	return out
}

// normalizeDay truncates t in place to UTC midnight. Idempotent; nil is a
// no-op so absent end dates pass through untouched.
func normalizeDay(t *time.Time) {
	if t == nil {
		return
	}
	y, m, d := t.Date()
	*t = time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
