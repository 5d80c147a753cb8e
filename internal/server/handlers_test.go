package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/clearhire/talentview/internal/auth"
	"github.com/clearhire/talentview/internal/config"
	"github.com/clearhire/talentview/internal/models"
	"github.com/clearhire/talentview/internal/store"
)

var testNow = time.Date(2026, 8, 26, 12, 0, 0, 0, time.UTC)

func intPtr(v int) *int { return &v }

func newTestServer(t *testing.T) *Server {
	t.Helper()
	st := store.NewMemoryStore()
	st.Load(store.Seed{
		Users: []models.User{
			{ID: "u-1", Name: "Ada Kaya", Email: "admin@talentview.dev", Password: "admin123", Role: "admin"},
		},
		Positions: []string{"Backend Engineer", "Frontend Engineer", "Product Designer"},
		Interviews: []models.Interview{
			{
				ID:            "iv-1",
				CandidateID:   "c-1",
				CandidateName: "John Doe",
				Position:      "Backend Engineer",
				Date:          testNow.Add(48 * time.Hour),
				Type:          models.TypeVideo,
				Status:        models.StatusPending,
			},
			{
				ID:            "iv-2",
				CandidateID:   "c-2",
				CandidateName: "Jane Smith",
				Position:      "Frontend Engineer",
				Date:          testNow.Add(-48 * time.Hour),
				Type:          models.TypeAssessment,
				Status:        models.StatusCompleted,
				Score:         intPtr(84),
			},
		},
		Templates: []models.Template{
			{
				ID:       "tpl-1",
				Name:     "Backend Screen",
				Category: models.TemplateTechnical,
				Questions: []models.Question{
					{ID: "q-1", QuestionText: "first", Difficulty: models.DifficultyEasy,
						Category: models.QuestionTechnical, AICriteria: []string{"communication"}, Order: 1},
				},
				QuestionCount: 1,
				CreatedDate:   testNow.Add(-30 * 24 * time.Hour),
				CreatedBy:     "Ada Kaya",
			},
		},
	})

	authSvc := auth.NewService(st, []byte("test-secret"), "talentview", time.Hour)
	srv := NewServer(st, authSvc, &config.ServerConfig{Host: "localhost", Port: 0}, zap.NewNop())
	srv.now = func() time.Time { return testNow }
	return srv
}

func login(t *testing.T, srv *Server) string {
	t.Helper()
	w := request(t, srv, http.MethodPost, "/api/auth/login", "",
		map[string]string{"email": "admin@talentview.dev", "password": "admin123"})
	if w.Code != http.StatusOK {
		t.Fatalf("login status = %d: %s", w.Code, w.Body.String())
	}
	var resp struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	return resp.Token
}

func request(t *testing.T, srv *Server, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatal(err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}
	r := httptest.NewRequest(method, path, reader)
	if body != nil {
		r.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		r.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, r)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(out); err != nil {
		t.Fatalf("decode: %v (body: %s)", err, w.Body.String())
	}
}

func TestLoginHandler(t *testing.T) {
	srv := newTestServer(t)

	w := request(t, srv, http.MethodPost, "/api/auth/login", "",
		map[string]string{"email": "admin@talentview.dev", "password": "admin123"})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var resp struct {
		Token string      `json:"token"`
		User  models.User `json:"user"`
	}
	decode(t, w, &resp)
	if resp.Token == "" {
		t.Error("empty token")
	}
	if resp.User.Name != "Ada Kaya" {
		t.Errorf("user = %+v", resp.User)
	}

	w = request(t, srv, http.MethodPost, "/api/auth/login", "",
		map[string]string{"email": "admin@talentview.dev", "password": "wrong-pass"})
	if w.Code != http.StatusUnauthorized {
		t.Errorf("bad credentials status = %d, want 401", w.Code)
	}

	w = request(t, srv, http.MethodPost, "/api/auth/login", "",
		map[string]string{"email": "not-an-email", "password": "admin123"})
	if w.Code != http.StatusBadRequest {
		t.Errorf("invalid email status = %d, want 400", w.Code)
	}
}

func TestRoutesRequireAuth(t *testing.T) {
	srv := newTestServer(t)
	paths := []string{"/api/interviews", "/api/templates", "/api/positions", "/api/dashboard"}
	for _, path := range paths {
		w := request(t, srv, http.MethodGet, path, "", nil)
		if w.Code != http.StatusUnauthorized {
			t.Errorf("GET %s without token = %d, want 401", path, w.Code)
		}
	}
}

func TestListInterviews(t *testing.T) {
	srv := newTestServer(t)
	token := login(t, srv)

	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{"all", "", []string{"iv-1", "iv-2"}},
		{"search by name", "?search=john", []string{"iv-1"}},
		{"search by position", "?search=frontend", []string{"iv-2"}},
		{"status filter", "?status=completed", []string{"iv-2"}},
		{"position filter", "?position=Backend+Engineer", []string{"iv-1"}},
		{"date range", "?dateFrom=2026-08-27", []string{"iv-1"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := request(t, srv, http.MethodGet, "/api/interviews"+tt.query, token, nil)
			if w.Code != http.StatusOK {
				t.Fatalf("status = %d", w.Code)
			}
			var got []models.Interview
			decode(t, w, &got)
			if len(got) != len(tt.want) {
				t.Fatalf("got %d interviews, want %d", len(got), len(tt.want))
			}
			for i := range tt.want {
				if got[i].ID != tt.want[i] {
					t.Errorf("result[%d] = %s, want %s", i, got[i].ID, tt.want[i])
				}
			}
		})
	}

	w := request(t, srv, http.MethodGet, "/api/interviews?dateFrom=whenever", token, nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("bad date status = %d, want 400", w.Code)
	}
}

func TestCreateInterviewForcesPendingAndNoScore(t *testing.T) {
	srv := newTestServer(t)
	token := login(t, srv)

	// Status and score in the body are ignored: creation always yields a
	// pending, unscored interview.
	body := map[string]interface{}{
		"candidateName":  "Sam Carter",
		"candidateEmail": "sam@example.com",
		"position":       "Product Designer",
		"date":           "2026-09-02T10:00:00Z",
		"type":           "video",
		"status":         "completed",
		"score":          95,
	}
	w := request(t, srv, http.MethodPost, "/api/interviews", token, body)
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d: %s", w.Code, w.Body.String())
	}
	var created models.Interview
	decode(t, w, &created)
	if created.ID == "" || created.CandidateID == "" {
		t.Errorf("ids not assigned: %+v", created)
	}
	if created.Status != models.StatusPending {
		t.Errorf("status = %q, want pending", created.Status)
	}
	if created.Score != nil {
		t.Errorf("score = %v, want nil", *created.Score)
	}
}

func TestCreateInterviewDefaultsTypeAndValidates(t *testing.T) {
	srv := newTestServer(t)
	token := login(t, srv)

	w := request(t, srv, http.MethodPost, "/api/interviews", token, map[string]interface{}{
		"candidateName":  "Sam Carter",
		"candidateEmail": "sam@example.com",
		"position":       "Product Designer",
		"date":           "2026-09-02T10:00:00Z",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d: %s", w.Code, w.Body.String())
	}
	var created models.Interview
	decode(t, w, &created)
	if created.Type != models.TypeAssessment {
		t.Errorf("type = %q, want assessment default", created.Type)
	}

	w = request(t, srv, http.MethodPost, "/api/interviews", token, map[string]interface{}{
		"candidateName": "X",
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	var resp struct {
		Error  string            `json:"error"`
		Fields map[string]string `json:"fields"`
	}
	decode(t, w, &resp)
	if resp.Error != "validation failed" {
		t.Errorf("error = %q", resp.Error)
	}
	for _, field := range []string{"candidateName", "candidateEmail", "position", "date"} {
		if resp.Fields[field] == "" {
			t.Errorf("missing validation message for %s: %v", field, resp.Fields)
		}
	}
}

func TestUpdateInterviewScoreRules(t *testing.T) {
	srv := newTestServer(t)
	token := login(t, srv)

	// Scoring a pending interview without completing it is rejected.
	w := request(t, srv, http.MethodPut, "/api/interviews/iv-1", token,
		map[string]interface{}{"score": 70})
	if w.Code != http.StatusBadRequest {
		t.Errorf("score on pending = %d, want 400", w.Code)
	}

	// Completing and scoring in one update is fine.
	w = request(t, srv, http.MethodPut, "/api/interviews/iv-1", token,
		map[string]interface{}{"status": "completed", "score": 70})
	if w.Code != http.StatusOK {
		t.Fatalf("complete with score = %d: %s", w.Code, w.Body.String())
	}
	var updated models.Interview
	decode(t, w, &updated)
	if updated.Status != models.StatusCompleted || updated.Score == nil || *updated.Score != 70 {
		t.Errorf("updated = %+v", updated)
	}

	// Re-scoring an already completed interview works too.
	w = request(t, srv, http.MethodPut, "/api/interviews/iv-2", token,
		map[string]interface{}{"score": 88})
	if w.Code != http.StatusOK {
		t.Errorf("re-score completed = %d", w.Code)
	}

	// Out-of-range scores are rejected.
	w = request(t, srv, http.MethodPut, "/api/interviews/iv-2", token,
		map[string]interface{}{"score": 101})
	if w.Code != http.StatusBadRequest {
		t.Errorf("score 101 = %d, want 400", w.Code)
	}

	// Reverting the status drops the stored score.
	w = request(t, srv, http.MethodPut, "/api/interviews/iv-2", token,
		map[string]interface{}{"status": "pending"})
	if w.Code != http.StatusOK {
		t.Fatalf("revert status = %d", w.Code)
	}
	decode(t, w, &updated)
	if updated.Score != nil {
		t.Errorf("score = %v after reverting status, want nil", *updated.Score)
	}
}

func TestInterviewNotFound(t *testing.T) {
	srv := newTestServer(t)
	token := login(t, srv)

	w := request(t, srv, http.MethodGet, "/api/interviews/nope", token, nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("get = %d, want 404", w.Code)
	}
	w = request(t, srv, http.MethodPut, "/api/interviews/nope", token, map[string]interface{}{"notes": "x"})
	if w.Code != http.StatusNotFound {
		t.Errorf("update = %d, want 404", w.Code)
	}
	w = request(t, srv, http.MethodDelete, "/api/interviews/nope", token, nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("delete = %d, want 404", w.Code)
	}
}

func TestDeleteInterview(t *testing.T) {
	srv := newTestServer(t)
	token := login(t, srv)

	w := request(t, srv, http.MethodDelete, "/api/interviews/iv-1", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var resp map[string]bool
	decode(t, w, &resp)
	if !resp["success"] {
		t.Errorf("body = %v, want success true", resp)
	}

	w = request(t, srv, http.MethodGet, "/api/interviews/iv-1", token, nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("get after delete = %d, want 404", w.Code)
	}
}

func TestCreateTemplate(t *testing.T) {
	srv := newTestServer(t)
	token := login(t, srv)

	body := map[string]interface{}{
		"name":     "Design Portfolio Review",
		"category": "custom",
		"questions": []map[string]interface{}{
			{
				"questionText": "Walk through your strongest project.",
				"difficulty":   "medium",
				"category":     "behavioral",
				"aiCriteria":   []string{"communication", "clarity"},
				"order":        9,
			},
			{
				"questionText": "How do you take critique?",
				"difficulty":   "easy",
				"category":     "culture",
				"aiCriteria":   []string{"adaptability"},
				"order":        9,
			},
		},
	}
	w := request(t, srv, http.MethodPost, "/api/templates", token, body)
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d: %s", w.Code, w.Body.String())
	}
	var created models.Template
	decode(t, w, &created)
	if created.ID == "" {
		t.Error("template id not assigned")
	}
	if created.CreatedBy != "Ada Kaya" {
		t.Errorf("createdBy = %q, want signed-in user's name", created.CreatedBy)
	}
	if !created.CreatedDate.Equal(testNow) {
		t.Errorf("createdDate = %v", created.CreatedDate)
	}
	if created.QuestionCount != 2 {
		t.Errorf("questionCount = %d", created.QuestionCount)
	}
	for i, q := range created.Questions {
		if q.ID == "" {
			t.Errorf("question %d has no id", i)
		}
		if q.Order != i+1 {
			t.Errorf("question %d order = %d, want %d", i, q.Order, i+1)
		}
	}
}

func TestCreateTemplateValidation(t *testing.T) {
	srv := newTestServer(t)
	token := login(t, srv)

	w := request(t, srv, http.MethodPost, "/api/templates", token, map[string]interface{}{
		"name":      "ab",
		"category":  "technical",
		"questions": []map[string]interface{}{},
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	var resp struct {
		Fields map[string]string `json:"fields"`
	}
	decode(t, w, &resp)
	if resp.Fields["name"] == "" || resp.Fields["questions"] == "" {
		t.Errorf("fields = %v", resp.Fields)
	}
}

func TestUpdateTemplateRestampsQuestions(t *testing.T) {
	srv := newTestServer(t)
	token := login(t, srv)

	// Replacement list arrives in display sequence with stale order values;
	// stored questions come back stamped 1..N.
	body := map[string]interface{}{
		"questions": []map[string]interface{}{
			{
				"id":           "q-2",
				"questionText": "second becomes first",
				"difficulty":   "hard",
				"category":     "technical",
				"aiCriteria":   []string{"problemSolving"},
				"order":        5,
			},
			{
				"id":           "q-1",
				"questionText": "first becomes second",
				"difficulty":   "easy",
				"category":     "technical",
				"aiCriteria":   []string{"communication"},
				"order":        1,
			},
		},
	}
	w := request(t, srv, http.MethodPut, "/api/templates/tpl-1", token, body)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", w.Code, w.Body.String())
	}
	var updated models.Template
	decode(t, w, &updated)
	if updated.QuestionCount != 2 {
		t.Errorf("questionCount = %d", updated.QuestionCount)
	}
	if updated.Questions[0].ID != "q-2" || updated.Questions[0].Order != 1 {
		t.Errorf("questions[0] = %+v", updated.Questions[0])
	}
	if updated.Questions[1].ID != "q-1" || updated.Questions[1].Order != 2 {
		t.Errorf("questions[1] = %+v", updated.Questions[1])
	}
}

func TestUpdateTemplateRejectsBadReplacementList(t *testing.T) {
	srv := newTestServer(t)
	token := login(t, srv)

	w := request(t, srv, http.MethodPut, "/api/templates/tpl-1", token, map[string]interface{}{
		"questions": []map[string]interface{}{},
	})
	if w.Code != http.StatusBadRequest {
		t.Errorf("empty list = %d, want 400", w.Code)
	}

	w = request(t, srv, http.MethodPut, "/api/templates/tpl-1", token, map[string]interface{}{
		"name": "ok name",
		"questions": []map[string]interface{}{
			{"questionText": "", "difficulty": "easy", "category": "technical", "aiCriteria": []string{"clarity"}},
		},
	})
	if w.Code != http.StatusBadRequest {
		t.Errorf("bad question = %d, want 400", w.Code)
	}

	// The rejected update must not have touched the stored template.
	w = request(t, srv, http.MethodGet, "/api/templates/tpl-1", token, nil)
	var tpl models.Template
	decode(t, w, &tpl)
	if tpl.Name != "Backend Screen" || tpl.QuestionCount != 1 {
		t.Errorf("template changed by rejected update: %+v", tpl)
	}
}

func TestDeleteTemplateKeepsInterviewReference(t *testing.T) {
	srv := newTestServer(t)
	token := login(t, srv)

	w := request(t, srv, http.MethodDelete, "/api/templates/tpl-1", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var resp map[string]bool
	decode(t, w, &resp)
	if !resp["success"] {
		t.Errorf("body = %v", resp)
	}
	w = request(t, srv, http.MethodGet, "/api/templates/tpl-1", token, nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("get after delete = %d, want 404", w.Code)
	}
}

func TestListPositions(t *testing.T) {
	srv := newTestServer(t)
	token := login(t, srv)

	w := request(t, srv, http.MethodGet, "/api/positions", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var positions []string
	decode(t, w, &positions)
	if len(positions) != 3 || positions[0] != "Backend Engineer" {
		t.Errorf("positions = %v", positions)
	}
}

func TestDashboard(t *testing.T) {
	srv := newTestServer(t)
	token := login(t, srv)

	w := request(t, srv, http.MethodGet, "/api/dashboard", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var summary models.DashboardSummary
	decode(t, w, &summary)

	m := summary.Metrics
	if m.TotalInterviews != 2 || m.PendingCandidates != 1 || m.CompletedInterviews != 1 {
		t.Errorf("metrics = %+v", m)
	}
	if m.AverageScore != 84 {
		t.Errorf("averageScore = %d", m.AverageScore)
	}
	if len(summary.UpcomingInterviews) != 1 || summary.UpcomingInterviews[0].ID != "iv-1" {
		t.Errorf("upcoming = %+v", summary.UpcomingInterviews)
	}
	if len(summary.RecentInterviews) != 2 {
		t.Errorf("recent = %+v", summary.RecentInterviews)
	}
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t)
	w := request(t, srv, http.MethodGet, "/health", "", nil)
	if w.Code != http.StatusOK {
		t.Errorf("status = %d", w.Code)
	}
}

func TestInvalidJSONBody(t *testing.T) {
	srv := newTestServer(t)
	token := login(t, srv)

	for _, tc := range []struct{ method, path string }{
		{http.MethodPost, "/api/interviews"},
		{http.MethodPut, "/api/interviews/iv-1"},
		{http.MethodPost, "/api/templates"},
		{http.MethodPut, "/api/templates/tpl-1"},
	} {
		r := httptest.NewRequest(tc.method, tc.path, bytes.NewReader([]byte("{not json")))
		r.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		srv.Router().ServeHTTP(w, r)
		if w.Code != http.StatusBadRequest {
			t.Errorf("%s %s = %d, want 400", tc.method, tc.path, w.Code)
		}
	}
}

func TestMostActivePositionTieBreak(t *testing.T) {
	srv := newTestServer(t)
	token := login(t, srv)

	w := request(t, srv, http.MethodGet, "/api/dashboard", token, nil)
	var summary models.DashboardSummary
	decode(t, w, &summary)
	// One interview each; the tie resolves to the first name in sort order.
	if got := summary.Metrics.MostActivePosition; got != "Backend Engineer" {
		t.Errorf("mostActivePosition = %q", got)
	}
}
