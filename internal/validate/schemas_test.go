package validate

import (
	"fmt"
	"testing"
	"time"

	"github.com/clearhire/talentview/internal/models"
)

func validQuestion() models.Question {
	return models.Question{
		QuestionText: "Describe a project you led.",
		Difficulty:   models.DifficultyMedium,
		Category:     models.QuestionBehavioral,
		AICriteria:   []string{"communication"},
	}
}

func validInterviewDraft() models.InterviewDraft {
	return models.InterviewDraft{
		CandidateName:  "John Doe",
		CandidateEmail: "john@example.com",
		Position:       "Backend Engineer",
		Date:           time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC),
		Type:           models.TypeVideo,
	}
}

func validTemplateDraft() models.TemplateDraft {
	return models.TemplateDraft{
		Name:      "Backend Screen",
		Category:  models.TemplateTechnical,
		Questions: []models.Question{validQuestion()},
	}
}

func TestLogin(t *testing.T) {
	tests := []struct {
		name      string
		email     string
		password  string
		wantField string
	}{
		{"valid", "a@b.co", "secret1", ""},
		{"email is trimmed", "  a@b.co  ", "secret1", ""},
		{"bad email", "not-an-email", "secret1", "email"},
		{"short password", "a@b.co", "五文字だ", "password"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			email, errs := Login(tt.email, tt.password)
			if tt.wantField == "" {
				if errs != nil {
					t.Fatalf("unexpected errors: %v", errs)
				}
				if email != "a@b.co" {
					t.Errorf("email = %q, want %q", email, "a@b.co")
				}
				return
			}
			if errs == nil {
				t.Fatal("expected errors, got none")
			}
			if _, ok := errs[tt.wantField]; !ok {
				t.Errorf("missing error for %q, got %v", tt.wantField, errs)
			}
		})
	}
}

func TestInterview(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*models.InterviewDraft)
		wantField string
	}{
		{"valid", func(d *models.InterviewDraft) {}, ""},
		{"short name", func(d *models.InterviewDraft) { d.CandidateName = "J" }, "candidateName"},
		{"whitespace name", func(d *models.InterviewDraft) { d.CandidateName = "   " }, "candidateName"},
		{"bad email", func(d *models.InterviewDraft) { d.CandidateEmail = "nope" }, "candidateEmail"},
		{"missing position", func(d *models.InterviewDraft) { d.Position = "" }, "position"},
		{"zero date", func(d *models.InterviewDraft) { d.Date = time.Time{} }, "date"},
		{"unknown type", func(d *models.InterviewDraft) { d.Type = "phone" }, "type"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			draft := validInterviewDraft()
			tt.mutate(&draft)
			got, errs := Interview(draft)
			if tt.wantField == "" {
				if errs != nil {
					t.Fatalf("unexpected errors: %v", errs)
				}
				if got.CandidateName != "John Doe" {
					t.Errorf("name = %q", got.CandidateName)
				}
				return
			}
			if _, ok := errs[tt.wantField]; !ok {
				t.Errorf("missing error for %q, got %v", tt.wantField, errs)
			}
		})
	}
}

func TestInterviewNormalizesFields(t *testing.T) {
	draft := validInterviewDraft()
	draft.CandidateName = "  John Doe  "
	draft.CandidateEmail = " john@example.com "
	got, errs := Interview(draft)
	if errs != nil {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if got.CandidateName != "John Doe" || got.CandidateEmail != "john@example.com" {
		t.Errorf("got %q / %q, want trimmed values", got.CandidateName, got.CandidateEmail)
	}
}

func TestTemplate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*models.TemplateDraft)
		wantField string
	}{
		{"valid", func(d *models.TemplateDraft) {}, ""},
		{"short name", func(d *models.TemplateDraft) { d.Name = "ab" }, "name"},
		{"unknown category", func(d *models.TemplateDraft) { d.Category = "misc" }, "category"},
		{"no questions", func(d *models.TemplateDraft) { d.Questions = nil }, "questions"},
		{
			"question text required",
			func(d *models.TemplateDraft) { d.Questions[0].QuestionText = "  " },
			"questions.0.questionText",
		},
		{
			"question difficulty enum",
			func(d *models.TemplateDraft) { d.Questions[0].Difficulty = "impossible" },
			"questions.0.difficulty",
		},
		{
			"question category enum",
			func(d *models.TemplateDraft) { d.Questions[0].Category = "custom" },
			"questions.0.category",
		},
		{
			"criteria required",
			func(d *models.TemplateDraft) { d.Questions[0].AICriteria = nil },
			"questions.0.aiCriteria",
		},
		{
			"criteria vocabulary",
			func(d *models.TemplateDraft) { d.Questions[0].AICriteria = []string{"charisma"} },
			"questions.0.aiCriteria.0",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			draft := validTemplateDraft()
			tt.mutate(&draft)
			_, errs := Template(draft)
			if tt.wantField == "" {
				if errs != nil {
					t.Fatalf("unexpected errors: %v", errs)
				}
				return
			}
			if _, ok := errs[tt.wantField]; !ok {
				t.Errorf("missing error for %q, got %v", tt.wantField, errs)
			}
		})
	}
}

func TestQuestionKeywordCap(t *testing.T) {
	q := validQuestion()
	for i := 0; i < models.MaxExpectedKeywords; i++ {
		q.ExpectedKeywords = append(q.ExpectedKeywords, fmt.Sprintf("kw%d", i))
	}
	if _, errs := Question(q); errs != nil {
		t.Fatalf("%d keywords should pass, got %v", models.MaxExpectedKeywords, errs)
	}

	q.ExpectedKeywords = append(q.ExpectedKeywords, "one too many")
	_, errs := Question(q)
	if errs == nil {
		t.Fatal("16 keywords should fail")
	}
	if errs["expectedKeywords"] != "At most 15 keywords are allowed" {
		t.Errorf("message = %q", errs["expectedKeywords"])
	}
}

func TestQuestionEmptyKeywordRejected(t *testing.T) {
	q := validQuestion()
	q.ExpectedKeywords = []string{"api", "   "}
	_, errs := Question(q)
	if errs == nil {
		t.Fatal("expected errors")
	}
	if _, ok := errs["expectedKeywords.1"]; !ok {
		t.Errorf("missing keyword error, got %v", errs)
	}
}

func TestQuestions(t *testing.T) {
	if _, errs := Questions(nil); errs == nil {
		t.Error("empty list should fail")
	}

	qs := []models.Question{validQuestion(), validQuestion()}
	qs[1].QuestionText = ""
	_, errs := Questions(qs)
	if errs == nil {
		t.Fatal("expected errors")
	}
	if _, ok := errs["questions.1.questionText"]; !ok {
		t.Errorf("missing indexed error, got %v", errs)
	}
}
