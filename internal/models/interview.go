// Package models defines core data structures for interviews, templates, and users.
package models

import "time"

// InterviewType classifies how an interview is conducted. A combo interview
// requires both an assessment and a video session.
type InterviewType string

const (
	TypeAssessment InterviewType = "assessment"
	TypeVideo      InterviewType = "video"
	TypeCombo      InterviewType = "combo"
)

// Valid reports whether t is one of the known interview types.
func (t InterviewType) Valid() bool {
	switch t {
	case TypeAssessment, TypeVideo, TypeCombo:
		return true
	}
	return false
}

// InterviewStatus is the lifecycle state of an interview.
type InterviewStatus string

const (
	StatusPending          InterviewStatus = "pending"
	StatusAwaitingResponse InterviewStatus = "awaitingResponse"
	StatusCompleted        InterviewStatus = "completed"
)

// Valid reports whether s is one of the known interview statuses.
func (s InterviewStatus) Valid() bool {
	switch s {
	case StatusPending, StatusAwaitingResponse, StatusCompleted:
		return true
	}
	return false
}

// Interview is a scheduled or completed candidate interview.
// Score is set only once the interview is completed; TemplateID is a
// non-owning reference to a question template.
type Interview struct {
	ID            string          `json:"id" yaml:"id"`
	CandidateID   string          `json:"candidateId" yaml:"candidateId"`
	CandidateName string          `json:"candidateName" yaml:"candidateName"`
	Position      string          `json:"position" yaml:"position"`
	Date          time.Time       `json:"date" yaml:"date"`
	Type          InterviewType   `json:"type" yaml:"type"`
	Status        InterviewStatus `json:"status" yaml:"status"`
	Score         *int            `json:"score" yaml:"score"`
	Notes         string          `json:"notes" yaml:"notes"`
	TemplateID    *string         `json:"templateId" yaml:"templateId"`
}

// InterviewDraft is the payload for creating an interview. Status and score
// are deliberately absent: new interviews always start pending and unscored.
type InterviewDraft struct {
	CandidateName  string        `json:"candidateName"`
	CandidateEmail string        `json:"candidateEmail"`
	Position       string        `json:"position"`
	Date           time.Time     `json:"date"`
	Type           InterviewType `json:"type"`
	TemplateID     *string       `json:"templateId,omitempty"`
	Notes          string        `json:"notes,omitempty"`
}

// InterviewPatch lists the fields an update may change. Nil means
// "leave unchanged". Score may only be set when the resulting status is
// completed; the server enforces that before the patch reaches a store.
type InterviewPatch struct {
	CandidateName *string          `json:"candidateName,omitempty"`
	Position      *string          `json:"position,omitempty"`
	Date          *time.Time       `json:"date,omitempty"`
	Type          *InterviewType   `json:"type,omitempty"`
	Status        *InterviewStatus `json:"status,omitempty"`
	Score         *int             `json:"score,omitempty"`
	Notes         *string          `json:"notes,omitempty"`
	TemplateID    *string          `json:"templateId,omitempty"`
}

// Apply merges the patch into iv, field by field. Moving an interview out
// of the completed status drops any stored score: score is present only
// when the interview is completed.
func (p InterviewPatch) Apply(iv *Interview) {
	if p.CandidateName != nil {
		iv.CandidateName = *p.CandidateName
	}
	if p.Position != nil {
		iv.Position = *p.Position
	}
	if p.Date != nil {
		iv.Date = *p.Date
	}
	if p.Type != nil {
		iv.Type = *p.Type
	}
	if p.Status != nil {
		iv.Status = *p.Status
		if iv.Status != StatusCompleted {
			iv.Score = nil
		}
	}
	if p.Score != nil {
		score := *p.Score
		iv.Score = &score
	}
	if p.Notes != nil {
		iv.Notes = *p.Notes
	}
	if p.TemplateID != nil {
		id := *p.TemplateID
		iv.TemplateID = &id
	}
}
