// Package session owns the mutable portfolio document for an editing
// session. Every logical operation (field set, add, remove, reorder,
// import, export) is a single method, so invariants are enforced in one
// place instead of scattered over callers.
package session

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/starford/othala/internal/apperr"
	"github.com/starford/othala/internal/filter"
	"github.com/starford/othala/internal/models"
	"github.com/starford/othala/internal/parser"
	"github.com/starford/othala/internal/storage"
	"github.com/starford/othala/internal/validate"
)

// Collection names accepted by Move.
const (
	CollectionJobsProjects = "jobsProjects"
	CollectionEducation    = "education"
	CollectionAchievements = "achievements"
)

// Move directions.
const (
	MoveUp   = "up"
	MoveDown = "down"
)

// Profile carries the top-level bio fields and socials for wholesale
// profile replacement.
type Profile struct {
	Name       string          `json:"name"`
	BornYear   string          `json:"bornYear"`
	Pronouns   string          `json:"pronouns"`
	Image      string          `json:"image"`
	ShortBio   string          `json:"shortBio"`
	LongBio    string          `json:"longBio"`
	Title      string          `json:"title"`
	Location   string          `json:"location"`
	ResumeLink string          `json:"resumeLink"`
	Socials    []models.Social `json:"socials"`
}

// Service coordinates the in-memory document, validation policy, and the
// document store. Reads hand out snapshots; writes are serialised by the
// internal lock.
type Service struct {
	store  storage.Provider
	policy validate.Policy

	mu  sync.RWMutex
	doc *models.Portfolio
}

// NewService creates a session starting from an empty document.
func NewService(store storage.Provider, policy validate.Policy) *Service {
	return &Service{store: store, policy: policy, doc: models.NewPortfolio()}
}

// Reload reads the stored document and replaces session state. The prior
// document is kept untouched on any read or parse failure.
func (s *Service) Reload() error {
	data, err := s.store.Read()
	if err != nil {
		return err
	}
	doc, err := parser.ParseJSON(data)
	if err != nil {
		return err
	}
	s.Replace(doc)
	return nil
}

// Document returns a deep-copy snapshot for read paths.
func (s *Service) Document() *models.Portfolio {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.doc.Clone()
}

// Replace swaps the session document wholesale, applying the current-flag
// coupling to every time-ranged record.
func (s *Service) Replace(doc *models.Portfolio) {
	for i := range doc.JobsProjects {
		doc.JobsProjects[i].EnforceCurrent()
	}
	for i := range doc.Education {
		doc.Education[i].EnforceCurrent()
	}
	s.mu.Lock()
	s.doc = doc
	s.mu.Unlock()
}

// Import parses raw document bytes leniently and replaces session state.
// On failure the prior document is preserved.
func (s *Service) Import(data []byte) error {
	doc, err := parser.ParseJSON(data)
	if err != nil {
		return err
	}
	s.Replace(doc)
	return nil
}

// Export validates the document, serialises it as pretty-printed JSON, and
// persists it atomically to the store. A validation failure blocks the
// export and is returned verbatim; the in-memory dates are normalised to
// day granularity as part of validation.
func (s *Service) Export() ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := validate.Validate(s.doc, s.policy); err != nil {
		return nil, err
	}
	data, err := json.MarshalIndent(s.doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("session: marshal document: %w", err)
	}
	if err := s.store.Write(data); err != nil {
		return nil, err
	}
	return data, nil
}

// SetProfile replaces the bio fields and socials.
func (s *Service) SetProfile(p Profile) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.doc.Name = p.Name
	s.doc.BornYear = p.BornYear
	s.doc.Pronouns = p.Pronouns
	s.doc.Image = p.Image
	s.doc.ShortBio = p.ShortBio
	s.doc.LongBio = p.LongBio
	s.doc.Title = p.Title
	s.doc.Location = p.Location
	s.doc.ResumeLink = p.ResumeLink
	if p.Socials != nil {
		s.doc.Socials = p.Socials
	}
}

// AddSocial appends a social link.
func (s *Service) AddSocial(so models.Social) {
	s.mu.Lock()
	s.doc.Socials = append(s.doc.Socials, so)
	s.mu.Unlock()
}

// UpdateSocial replaces the social link at index. Socials carry no ids, so
// they are addressed by position.
func (s *Service) UpdateSocial(index int, so models.Social) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if index < 0 || index >= len(s.doc.Socials) {
		return apperr.ErrNotFound
	}
	s.doc.Socials[index] = so
	return nil
}

// RemoveSocial deletes the social link at index.
func (s *Service) RemoveSocial(index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if index < 0 || index >= len(s.doc.Socials) {
		return apperr.ErrNotFound
	}
	s.doc.Socials = append(s.doc.Socials[:index], s.doc.Socials[index+1:]...)
	return nil
}

// AddJobProject appends a job/project, assigning a fresh id.
func (s *Service) AddJobProject(j models.JobProject) models.JobProject {
	base := models.NewJobProject()
	j.ID = base.ID
	j.EnforceCurrent()
	s.mu.Lock()
	s.doc.JobsProjects = append(s.doc.JobsProjects, j)
	s.mu.Unlock()
	return j
}

// UpdateJobProject replaces the record with the given id. The id itself is
// stable across edits.
func (s *Service) UpdateJobProject(id string, j models.JobProject) error {
	j.ID = id
	j.EnforceCurrent()
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.doc.JobsProjects {
		if s.doc.JobsProjects[i].ID == id {
			s.doc.JobsProjects[i] = j
			return nil
		}
	}
	return apperr.ErrNotFound
}

// RemoveJobProject deletes the record with the given id.
func (s *Service) RemoveJobProject(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.doc.JobsProjects {
		if s.doc.JobsProjects[i].ID == id {
			s.doc.JobsProjects = append(s.doc.JobsProjects[:i], s.doc.JobsProjects[i+1:]...)
			return nil
		}
	}
	return apperr.ErrNotFound
}

// AddEducation appends an education entry, assigning a fresh id.
func (s *Service) AddEducation(e models.Education) models.Education {
	base := models.NewEducation()
	e.ID = base.ID
	e.EnforceCurrent()
	s.mu.Lock()
	s.doc.Education = append(s.doc.Education, e)
	s.mu.Unlock()
	return e
}

// UpdateEducation replaces the record with the given id.
func (s *Service) UpdateEducation(id string, e models.Education) error {
	e.ID = id
	e.EnforceCurrent()
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.doc.Education {
		if s.doc.Education[i].ID == id {
			s.doc.Education[i] = e
			return nil
		}
	}
	return apperr.ErrNotFound
}

// RemoveEducation deletes the record with the given id.
func (s *Service) RemoveEducation(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.doc.Education {
		if s.doc.Education[i].ID == id {
			s.doc.Education = append(s.doc.Education[:i], s.doc.Education[i+1:]...)
			return nil
		}
	}
	return apperr.ErrNotFound
}

// AddAchievement appends an achievement, assigning a fresh id.
func (s *Service) AddAchievement(a models.Achievement) models.Achievement {
	base := models.NewAchievement()
	a.ID = base.ID
	s.mu.Lock()
	s.doc.Achievements = append(s.doc.Achievements, a)
	s.mu.Unlock()
	return a
}

// UpdateAchievement replaces the record with the given id.
func (s *Service) UpdateAchievement(id string, a models.Achievement) error {
	a.ID = id
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.doc.Achievements {
		if s.doc.Achievements[i].ID == id {
			s.doc.Achievements[i] = a
			return nil
		}
	}
	return apperr.ErrNotFound
}

// RemoveAchievement deletes the record with the given id.
func (s *Service) RemoveAchievement(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.doc.Achievements {
		if s.doc.Achievements[i].ID == id {
			s.doc.Achievements = append(s.doc.Achievements[:i], s.doc.Achievements[i+1:]...)
			return nil
		}
	}
	return apperr.ErrNotFound
}

// Move swaps the record with its neighbour in the named collection.
// Moving past either boundary is a silent no-op; an unknown collection or
// id is an error.
func (s *Service) Move(collection, id, direction string) error {
	if direction != MoveUp && direction != MoveDown {
		return fmt.Errorf("session: unknown direction %q", direction)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	switch collection {
	case CollectionJobsProjects:
		return moveByID(s.doc.JobsProjects, func(j models.JobProject) string { return j.ID }, id, direction)
	case CollectionEducation:
		return moveByID(s.doc.Education, func(e models.Education) string { return e.ID }, id, direction)
	case CollectionAchievements:
		return moveByID(s.doc.Achievements, func(a models.Achievement) string { return a.ID }, id, direction)
	default:
		return fmt.Errorf("session: unknown collection %q", collection)
	}
}

// Search runs the filter engine over a snapshot of the document.
func (s *Service) Search(c filter.Criteria) []filter.ResultRef {
	return filter.Filter(s.Document(), c)
}

// Resolve hydrates a search hit into the full record.
func (s *Service) Resolve(id string) (*filter.Resolved, error) {
	r := filter.ResolveByID(s.Document(), id)
	if r == nil {
		return nil, apperr.ErrNotFound
	}
	return r, nil
}

// Skills returns the deduplicated skill union across the document.
func (s *Service) Skills() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	skills := s.doc.AllSkills()
	if skills == nil {
		return []string{}
	}
	return skills
}

func moveByID[T any](list []T, idOf func(T) string, id, direction string) error {
	idx := -1
	for i, item := range list {
		if idOf(item) == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return apperr.ErrNotFound
	}
	swap := idx - 1
	if direction == MoveDown {
		swap = idx + 1
	}
	if swap < 0 || swap >= len(list) {
		return nil // boundary: no-op
	}
	list[idx], list[swap] = list[swap], list[idx]
	return nil
}
