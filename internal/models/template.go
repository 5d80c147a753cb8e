package models

import "time"

// TemplateCategory classifies a question template.
type TemplateCategory string

const (
	TemplateTechnical  TemplateCategory = "technical"
	TemplateBehavioral TemplateCategory = "behavioral"
	TemplateCulture    TemplateCategory = "culture"
	TemplateLeadership TemplateCategory = "leadership"
	TemplateCustom     TemplateCategory = "custom"
)

// Valid reports whether c is one of the known template categories.
func (c TemplateCategory) Valid() bool {
	switch c {
	case TemplateTechnical, TemplateBehavioral, TemplateCulture, TemplateLeadership, TemplateCustom:
		return true
	}
	return false
}

// QuestionCategory classifies a single question. Unlike templates there is
// no "custom" bucket.
type QuestionCategory string

const (
	QuestionTechnical  QuestionCategory = "technical"
	QuestionBehavioral QuestionCategory = "behavioral"
	QuestionCulture    QuestionCategory = "culture"
	QuestionLeadership QuestionCategory = "leadership"
)

// Valid reports whether c is one of the known question categories.
func (c QuestionCategory) Valid() bool {
	switch c {
	case QuestionTechnical, QuestionBehavioral, QuestionCulture, QuestionLeadership:
		return true
	}
	return false
}

// Difficulty grades how hard a question is.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Valid reports whether d is one of the known difficulties.
func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

// AICriteria is the closed vocabulary of soft-skill dimensions an automated
// scorer can be asked to evaluate for a question.
var AICriteria = []string{
	"communication",
	"problemSolving",
	"criticalThinking",
	"teamwork",
	"technicalDepth",
	"clarity",
	"adaptability",
}

// ValidAICriterion reports whether v belongs to the AICriteria vocabulary.
func ValidAICriterion(v string) bool {
	for _, c := range AICriteria {
		if c == v {
			return true
		}
	}
	return false
}

// MaxExpectedKeywords caps the expected-keywords list on a question.
const MaxExpectedKeywords = 15

// Question is a single prompt owned by exactly one template. Order is
// 1-based and dense within the owning template's question list.
type Question struct {
	ID               string           `json:"id" yaml:"id"`
	QuestionText     string           `json:"questionText" yaml:"questionText"`
	Difficulty       Difficulty       `json:"difficulty" yaml:"difficulty"`
	Category         QuestionCategory `json:"category" yaml:"category"`
	AICriteria       []string         `json:"aiCriteria" yaml:"aiCriteria"`
	Notes            string           `json:"notes,omitempty" yaml:"notes"`
	ExpectedKeywords []string         `json:"expectedKeywords,omitempty" yaml:"expectedKeywords"`
	Order            int              `json:"order" yaml:"order"`
}

// Template is a named, ordered set of questions reusable across interviews.
// QuestionCount is derived from Questions and kept in step by the server.
type Template struct {
	ID            string           `json:"id" yaml:"id"`
	Name          string           `json:"name" yaml:"name"`
	Description   string           `json:"description" yaml:"description"`
	Category      TemplateCategory `json:"category" yaml:"category"`
	Questions     []Question       `json:"questions" yaml:"questions"`
	QuestionCount int              `json:"questionCount" yaml:"questionCount"`
	CreatedDate   time.Time        `json:"createdDate" yaml:"createdDate"`
	CreatedBy     string           `json:"createdBy" yaml:"createdBy"`
	UsageCount    int              `json:"usageCount" yaml:"usageCount"`
	IsFavorite    bool             `json:"isFavorite" yaml:"isFavorite"`
}

// TemplateDraft is the payload for creating a template. Question ids are
// assigned server-side on create.
type TemplateDraft struct {
	Name        string           `json:"name"`
	Description string           `json:"description,omitempty"`
	Category    TemplateCategory `json:"category"`
	Questions   []Question       `json:"questions"`
}

// TemplatePatch lists the fields a template update may change. A non-nil
// Questions replaces the whole list; order is re-stamped before storage.
type TemplatePatch struct {
	Name        *string           `json:"name,omitempty"`
	Description *string           `json:"description,omitempty"`
	Category    *TemplateCategory `json:"category,omitempty"`
	Questions   *[]Question       `json:"questions,omitempty"`
	IsFavorite  *bool             `json:"isFavorite,omitempty"`
}

// Apply merges the patch into tpl, keeping QuestionCount in step with the
// question list.
func (p TemplatePatch) Apply(tpl *Template) {
	if p.Name != nil {
		tpl.Name = *p.Name
	}
	if p.Description != nil {
		tpl.Description = *p.Description
	}
	if p.Category != nil {
		tpl.Category = *p.Category
	}
	if p.Questions != nil {
		tpl.Questions = append([]Question(nil), (*p.Questions)...)
		tpl.QuestionCount = len(tpl.Questions)
	}
	if p.IsFavorite != nil {
		tpl.IsFavorite = *p.IsFavorite
	}
}
