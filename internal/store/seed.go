package store

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/clearhire/talentview/internal/models"
)

// Seed is the demo dataset loaded into a store at startup. It can be read
// from a YAML fixture file or generated by DefaultSeed.
type Seed struct {
	Users      []models.User      `yaml:"users"`
	Positions  []string           `yaml:"positions"`
	Interviews []models.Interview `yaml:"interviews"`
	Templates  []models.Template  `yaml:"templates"`
}

// LoadSeed reads and parses the YAML fixture file at path.
func LoadSeed(path string) (Seed, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Seed{}, fmt.Errorf("failed to read seed file: %w", err)
	}
	var seed Seed
	if err := yaml.Unmarshal(data, &seed); err != nil {
		return Seed{}, fmt.Errorf("failed to parse seed file: %w", err)
	}
	return seed, nil
}

func intPtr(v int) *int { return &v }

// DefaultSeed returns a small built-in dataset: two users, a handful of
// interviews spread around now, and one template. Dates are relative to the
// current time so the dashboard always has upcoming and recent entries.
func DefaultSeed(now time.Time) Seed {
	templateID := "6f1f1f62-0b1a-4a6e-9d0e-2b8f6d9a1c01"
	return Seed{
		Users: []models.User{
			{
				ID:       "0c9a3e11-4f62-4f1e-8a6b-1c2d3e4f5a01",
				Name:     "Ada Kaya",
				Email:    "admin@talentview.dev",
				Password: "admin123",
				Role:     "admin",
			},
			{
				ID:       "0c9a3e11-4f62-4f1e-8a6b-1c2d3e4f5a02",
				Name:     "Mert Demir",
				Email:    "recruiter@talentview.dev",
				Password: "recruit123",
				Role:     "recruiter",
			},
		},
		Positions: []string{
			"Backend Engineer",
			"Frontend Engineer",
			"Product Designer",
			"Engineering Manager",
		},
		Interviews: []models.Interview{
			{
				ID:            "a1b2c3d4-0001-4000-8000-000000000001",
				CandidateID:   "a1b2c3d4-1001-4000-8000-000000000001",
				CandidateName: "John Doe",
				Position:      "Backend Engineer",
				Date:          now.Add(48 * time.Hour),
				Type:          models.TypeVideo,
				Status:        models.StatusPending,
				Notes:         "Referred by the platform team.",
				TemplateID:    &templateID,
			},
			{
				ID:            "a1b2c3d4-0001-4000-8000-000000000002",
				CandidateID:   "a1b2c3d4-1001-4000-8000-000000000002",
				CandidateName: "Jane Smith",
				Position:      "Frontend Engineer",
				Date:          now.Add(72 * time.Hour),
				Type:          models.TypeCombo,
				Status:        models.StatusAwaitingResponse,
			},
			{
				ID:            "a1b2c3d4-0001-4000-8000-000000000003",
				CandidateID:   "a1b2c3d4-1001-4000-8000-000000000003",
				CandidateName: "Elif Yilmaz",
				Position:      "Backend Engineer",
				Date:          now.Add(-96 * time.Hour),
				Type:          models.TypeAssessment,
				Status:        models.StatusCompleted,
				Score:         intPtr(87),
				Notes:         "Strong on systems design.",
			},
			{
				ID:            "a1b2c3d4-0001-4000-8000-000000000004",
				CandidateID:   "a1b2c3d4-1001-4000-8000-000000000004",
				CandidateName: "Sam Carter",
				Position:      "Product Designer",
				Date:          now.Add(-24 * time.Hour),
				Type:          models.TypeVideo,
				Status:        models.StatusCompleted,
				Score:         intPtr(74),
			},
		},
		Templates: []models.Template{
			{
				ID:          templateID,
				Name:        "Backend Technical Screen",
				Description: "Core screen for backend candidates.",
				Category:    models.TemplateTechnical,
				Questions: []models.Question{
					{
						ID:           "6f1f1f62-0b1a-4a6e-9d0e-2b8f6d9a1c11",
						QuestionText: "Walk through a service you designed end to end.",
						Difficulty:   models.DifficultyMedium,
						Category:     models.QuestionTechnical,
						AICriteria:   []string{"communication", "technicalDepth"},
						ExpectedKeywords: []string{
							"api", "database", "scaling",
						},
						Order: 1,
					},
					{
						ID:           "6f1f1f62-0b1a-4a6e-9d0e-2b8f6d9a1c12",
						QuestionText: "How do you debug a latency regression in production?",
						Difficulty:   models.DifficultyHard,
						Category:     models.QuestionTechnical,
						AICriteria:   []string{"problemSolving", "criticalThinking"},
						Order:        2,
					},
					{
						ID:           "6f1f1f62-0b1a-4a6e-9d0e-2b8f6d9a1c13",
						QuestionText: "Tell me about a disagreement with a teammate and how it resolved.",
						Difficulty:   models.DifficultyEasy,
						Category:     models.QuestionBehavioral,
						AICriteria:   []string{"teamwork", "clarity"},
						Order:        3,
					},
				},
				QuestionCount: 3,
				CreatedDate:   now.Add(-30 * 24 * time.Hour),
				CreatedBy:     "Ada Kaya",
				UsageCount:    12,
				IsFavorite:    true,
			},
		},
	}
}
