package store

import (
	"context"
	"sync"

	"github.com/clearhire/talentview/internal/models"
)

// MemoryStore keeps all records in process memory. It is the default
// backend: the dataset is a demo fixture, and the store is handed to the
// server explicitly rather than living in package-level state. Safe for
// concurrent use.
type MemoryStore struct {
	mu         sync.RWMutex
	interviews []models.Interview
	templates  []models.Template
	positions  []string
	users      []models.User
}

// NewMemoryStore returns an empty in-memory store. Call Load to seed it.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Load replaces the store contents with the given seed. Used at startup and
// whenever the seed fixture file is reloaded.
func (s *MemoryStore) Load(seed Seed) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.interviews = append([]models.Interview(nil), seed.Interviews...)
	s.templates = append([]models.Template(nil), seed.Templates...)
	s.positions = append([]string(nil), seed.Positions...)
	s.users = append([]models.User(nil), seed.Users...)
}

// ListInterviews returns the interviews matching filter, in insertion order.
func (s *MemoryStore) ListInterviews(_ context.Context, filter InterviewFilter) ([]models.Interview, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Interview, 0, len(s.interviews))
	for _, iv := range s.interviews {
		if filter.Matches(iv) {
			out = append(out, iv)
		}
	}
	return out, nil
}

// GetInterview returns the interview with the given id.
func (s *MemoryStore) GetInterview(_ context.Context, id string) (models.Interview, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, iv := range s.interviews {
		if iv.ID == id {
			return iv, nil
		}
	}
	return models.Interview{}, ErrNotFound
}

// CreateInterview appends iv, assigning fresh ids.
func (s *MemoryStore) CreateInterview(_ context.Context, iv models.Interview) (models.Interview, error) {
	prepareInterview(&iv)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.interviews = append(s.interviews, iv)
	return iv, nil
}

// UpdateInterview merges patch into the stored interview.
func (s *MemoryStore) UpdateInterview(_ context.Context, id string, patch models.InterviewPatch) (models.Interview, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.interviews {
		if s.interviews[i].ID == id {
			patch.Apply(&s.interviews[i])
			return s.interviews[i], nil
		}
	}
	return models.Interview{}, ErrNotFound
}

// DeleteInterview removes the interview with the given id.
func (s *MemoryStore) DeleteInterview(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.interviews {
		if s.interviews[i].ID == id {
			s.interviews = append(s.interviews[:i], s.interviews[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

// ListTemplates returns all templates in insertion order.
func (s *MemoryStore) ListTemplates(_ context.Context) ([]models.Template, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Template(nil), s.templates...), nil
}

// GetTemplate returns the template with the given id.
func (s *MemoryStore) GetTemplate(_ context.Context, id string) (models.Template, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, tpl := range s.templates {
		if tpl.ID == id {
			return tpl, nil
		}
	}
	return models.Template{}, ErrNotFound
}

// CreateTemplate appends tpl, assigning ids to the template and its
// questions.
func (s *MemoryStore) CreateTemplate(_ context.Context, tpl models.Template) (models.Template, error) {
	prepareTemplate(&tpl)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.templates = append(s.templates, tpl)
	return tpl, nil
}

// UpdateTemplate merges patch into the stored template.
func (s *MemoryStore) UpdateTemplate(_ context.Context, id string, patch models.TemplatePatch) (models.Template, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.templates {
		if s.templates[i].ID == id {
			patch.Apply(&s.templates[i])
			return s.templates[i], nil
		}
	}
	return models.Template{}, ErrNotFound
}

// DeleteTemplate removes the template with the given id. Interviews that
// referenced it keep their dangling non-owning reference.
func (s *MemoryStore) DeleteTemplate(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.templates {
		if s.templates[i].ID == id {
			s.templates = append(s.templates[:i], s.templates[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

// ListPositions returns the known position names.
func (s *MemoryStore) ListPositions(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string(nil), s.positions...), nil
}

// GetUserByEmail returns the user with the given email.
func (s *MemoryStore) GetUserByEmail(_ context.Context, email string) (models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.Email == email {
			return u, nil
		}
	}
	return models.User{}, ErrNotFound
}

// Close is a no-op for the memory store.
func (s *MemoryStore) Close() error { return nil }
