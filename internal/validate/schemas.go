package validate

import (
	"fmt"

	"github.com/clearhire/talentview/internal/models"
)

// Login validates sign-in credentials.
func Login(email, password string) (string, Errors) {
	errs := Errors{}
	email = String(errs, "email", email, Trim(), Email("Invalid email address"))
	String(errs, "password", password, MinLen(6, "Password must be at least 6 characters"))
	if len(errs) > 0 {
		return email, errs
	}
	return email, nil
}

// Interview validates and normalizes an interview creation draft. The
// score/status relationship is not checked here: drafts carry neither, and
// for updates it is a server-side concern.
func Interview(draft models.InterviewDraft) (models.InterviewDraft, Errors) {
	errs := Errors{}
	draft.CandidateName = String(errs, "candidateName", draft.CandidateName,
		Trim(), MinLen(2, "Name must be at least 2 characters"))
	draft.CandidateEmail = String(errs, "candidateEmail", draft.CandidateEmail,
		Trim(), Email("Invalid email address"))
	draft.Position = String(errs, "position", draft.Position,
		Trim(), NonEmpty("Please select a position"))
	Check(errs, "date", !draft.Date.IsZero(), "Please select a date")
	Check(errs, "type", draft.Type.Valid(), "Unknown interview type")
	if len(errs) > 0 {
		return draft, errs
	}
	return draft, nil
}

// Template validates and normalizes a template creation draft, including
// every question in it.
func Template(draft models.TemplateDraft) (models.TemplateDraft, Errors) {
	errs := Errors{}
	draft.Name = String(errs, "name", draft.Name,
		Trim(), MinLen(3, "Template name must be at least 3 characters"))
	draft.Description = String(errs, "description", draft.Description, Trim())
	Check(errs, "category", draft.Category.Valid(), "Unknown template category")
	Count(errs, "questions", len(draft.Questions), 1, 0,
		"At least one question is required", "")
	for i := range draft.Questions {
		draft.Questions[i] = question(errs, fmt.Sprintf("questions.%d", i), draft.Questions[i])
	}
	if len(errs) > 0 {
		return draft, errs
	}
	return draft, nil
}

// Questions validates a full replacement question list, as sent by a
// template update.
func Questions(qs []models.Question) ([]models.Question, Errors) {
	errs := Errors{}
	Count(errs, "questions", len(qs), 1, 0, "At least one question is required", "")
	out := append([]models.Question(nil), qs...)
	for i := range out {
		out[i] = question(errs, fmt.Sprintf("questions.%d", i), out[i])
	}
	if len(errs) > 0 {
		return out, errs
	}
	return out, nil
}

// Question validates a single question on its own, e.g. when one is edited
// in place.
func Question(q models.Question) (models.Question, Errors) {
	errs := Errors{}
	q = question(errs, "", q)
	if len(errs) > 0 {
		return q, errs
	}
	return q, nil
}

func question(errs Errors, path string, q models.Question) models.Question {
	field := func(name string) string {
		if path == "" {
			return name
		}
		return path + "." + name
	}

	q.QuestionText = String(errs, field("questionText"), q.QuestionText,
		Trim(), NonEmpty("Question text is required"))
	Check(errs, field("difficulty"), q.Difficulty.Valid(), "Unknown difficulty")
	Check(errs, field("category"), q.Category.Valid(), "Unknown question category")

	Count(errs, field("aiCriteria"), len(q.AICriteria), 1, 0,
		"At least one evaluation criterion is required", "")
	for i, c := range q.AICriteria {
		Check(errs, fmt.Sprintf("%s.%d", field("aiCriteria"), i),
			models.ValidAICriterion(c), "Unknown evaluation criterion")
	}

	Count(errs, field("expectedKeywords"), len(q.ExpectedKeywords), 0, models.MaxExpectedKeywords,
		"", fmt.Sprintf("At most %d keywords are allowed", models.MaxExpectedKeywords))
	for i := range q.ExpectedKeywords {
		q.ExpectedKeywords[i] = String(errs, fmt.Sprintf("%s.%d", field("expectedKeywords"), i),
			q.ExpectedKeywords[i], Trim(), NonEmpty("Keywords cannot be empty"))
	}

	q.Notes = String(errs, field("notes"), q.Notes, Trim())
	Check(errs, field("order"), q.Order >= 0, "Order cannot be negative")
	return q
}
