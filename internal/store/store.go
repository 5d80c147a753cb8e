// Package store defines the record store contract for interviews,
// templates, positions, and users, with in-memory and SQLite
// implementations.
package store

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/clearhire/talentview/internal/models"
)

// ErrNotFound is returned when a record id does not exist.
var ErrNotFound = errors.New("record not found")

// InterviewFilter narrows ListInterviews results. All set fields must match
// (logical AND). Date bounds are inclusive.
type InterviewFilter struct {
	Search   string
	Position string
	Status   models.InterviewStatus
	DateFrom *time.Time
	DateTo   *time.Time
}

// Matches reports whether iv satisfies every set filter field. Search is a
// case-insensitive substring match against the candidate name or position.
func (f InterviewFilter) Matches(iv models.Interview) bool {
	if f.Search != "" {
		needle := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(iv.CandidateName), needle) &&
			!strings.Contains(strings.ToLower(iv.Position), needle) {
			return false
		}
	}
	if f.Position != "" && iv.Position != f.Position {
		return false
	}
	if f.Status != "" && iv.Status != f.Status {
		return false
	}
	if f.DateFrom != nil && iv.Date.Before(*f.DateFrom) {
		return false
	}
	if f.DateTo != nil && iv.Date.After(*f.DateTo) {
		return false
	}
	return true
}

// Store is the record store used by the server. Create assigns fresh ids;
// Update shallow-merges a patch without validating it (validation happens
// before a patch reaches the store). Each operation succeeds or fails
// atomically for its single record.
type Store interface {
	ListInterviews(ctx context.Context, filter InterviewFilter) ([]models.Interview, error)
	GetInterview(ctx context.Context, id string) (models.Interview, error)
	CreateInterview(ctx context.Context, iv models.Interview) (models.Interview, error)
	UpdateInterview(ctx context.Context, id string, patch models.InterviewPatch) (models.Interview, error)
	DeleteInterview(ctx context.Context, id string) error

	ListTemplates(ctx context.Context) ([]models.Template, error)
	GetTemplate(ctx context.Context, id string) (models.Template, error)
	CreateTemplate(ctx context.Context, tpl models.Template) (models.Template, error)
	UpdateTemplate(ctx context.Context, id string, patch models.TemplatePatch) (models.Template, error)
	DeleteTemplate(ctx context.Context, id string) error

	ListPositions(ctx context.Context) ([]string, error)
	GetUserByEmail(ctx context.Context, email string) (models.User, error)

	Close() error
}

// prepareInterview assigns ids to a new interview. The candidate gets a
// fresh id too when the draft did not name an existing one.
func prepareInterview(iv *models.Interview) {
	if iv.ID == "" {
		iv.ID = uuid.NewString()
	}
	if iv.CandidateID == "" {
		iv.CandidateID = uuid.NewString()
	}
}

// prepareTemplate assigns ids to a new template and every question that
// arrived without one.
func prepareTemplate(tpl *models.Template) {
	if tpl.ID == "" {
		tpl.ID = uuid.NewString()
	}
	for i := range tpl.Questions {
		if tpl.Questions[i].ID == "" {
			tpl.Questions[i].ID = uuid.NewString()
		}
	}
}
