package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"

	"github.com/clearhire/talentview/internal/models"
)

// SQLiteStore implements Store on a SQLite database. Question lists are
// stored as a JSON column on the template row: questions have no lifecycle
// of their own, so a child table would only add joins.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens or creates a SQLite database at dbPath and
// initializes the schema. Parent directories are created if they do not
// exist.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable WAL: %w", err)
	}

	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

func initSchema(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS interviews (
		id TEXT PRIMARY KEY,
		candidate_id TEXT NOT NULL,
		candidate_name TEXT NOT NULL,
		position TEXT NOT NULL,
		date TIMESTAMP NOT NULL,
		type TEXT NOT NULL,
		status TEXT NOT NULL,
		score INTEGER,
		notes TEXT NOT NULL DEFAULT '',
		template_id TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_interviews_date ON interviews(date);
	CREATE INDEX IF NOT EXISTS idx_interviews_status ON interviews(status);

	CREATE TABLE IF NOT EXISTS templates (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		category TEXT NOT NULL,
		questions TEXT NOT NULL,
		question_count INTEGER NOT NULL,
		created_date TIMESTAMP NOT NULL,
		created_by TEXT NOT NULL,
		usage_count INTEGER NOT NULL DEFAULT 0,
		is_favorite INTEGER NOT NULL DEFAULT 0
	);

	CREATE TABLE IF NOT EXISTS positions (
		name TEXT PRIMARY KEY
	);

	CREATE TABLE IF NOT EXISTS users (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		email TEXT NOT NULL UNIQUE,
		password TEXT NOT NULL,
		role TEXT NOT NULL DEFAULT '',
		avatar TEXT NOT NULL DEFAULT ''
	);
	`
	_, err := db.Exec(schema)
	return err
}

const interviewColumns = `id, candidate_id, candidate_name, position, date, type, status, score, notes, template_id`

func scanInterview(row interface{ Scan(...any) error }) (models.Interview, error) {
	var iv models.Interview
	var score sql.NullInt64
	var templateID sql.NullString
	err := row.Scan(&iv.ID, &iv.CandidateID, &iv.CandidateName, &iv.Position,
		&iv.Date, &iv.Type, &iv.Status, &score, &iv.Notes, &templateID)
	if err != nil {
		return models.Interview{}, err
	}
	if score.Valid {
		v := int(score.Int64)
		iv.Score = &v
	}
	if templateID.Valid {
		v := templateID.String
		iv.TemplateID = &v
	}
	return iv, nil
}

func interviewArgs(iv models.Interview) []any {
	var score sql.NullInt64
	if iv.Score != nil {
		score = sql.NullInt64{Int64: int64(*iv.Score), Valid: true}
	}
	var templateID sql.NullString
	if iv.TemplateID != nil {
		templateID = sql.NullString{String: *iv.TemplateID, Valid: true}
	}
	return []any{iv.ID, iv.CandidateID, iv.CandidateName, iv.Position,
		iv.Date, iv.Type, iv.Status, score, iv.Notes, templateID}
}

// ListInterviews returns the interviews matching filter.
func (s *SQLiteStore) ListInterviews(ctx context.Context, filter InterviewFilter) ([]models.Interview, error) {
	query := `SELECT ` + interviewColumns + ` FROM interviews WHERE 1=1`
	var args []any
	if filter.Search != "" {
		query += ` AND (LOWER(candidate_name) LIKE '%' || LOWER(?) || '%' OR LOWER(position) LIKE '%' || LOWER(?) || '%')`
		args = append(args, filter.Search, filter.Search)
	}
	if filter.Position != "" {
		query += ` AND position = ?`
		args = append(args, filter.Position)
	}
	if filter.Status != "" {
		query += ` AND status = ?`
		args = append(args, filter.Status)
	}
	if filter.DateFrom != nil {
		query += ` AND date >= ?`
		args = append(args, *filter.DateFrom)
	}
	if filter.DateTo != nil {
		query += ` AND date <= ?`
		args = append(args, *filter.DateTo)
	}
	query += ` ORDER BY rowid`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Interview{}
	for rows.Next() {
		iv, err := scanInterview(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, iv)
	}
	return out, rows.Err()
}

// GetInterview returns the interview with the given id.
func (s *SQLiteStore) GetInterview(ctx context.Context, id string) (models.Interview, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+interviewColumns+` FROM interviews WHERE id = ?`, id)
	iv, err := scanInterview(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Interview{}, ErrNotFound
	}
	return iv, err
}

// CreateInterview inserts iv, assigning fresh ids.
func (s *SQLiteStore) CreateInterview(ctx context.Context, iv models.Interview) (models.Interview, error) {
	prepareInterview(&iv)
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO interviews (`+interviewColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		interviewArgs(iv)...)
	if err != nil {
		return models.Interview{}, err
	}
	return iv, nil
}

// UpdateInterview merges patch into the stored interview inside a
// transaction, so a failed write leaves the record untouched.
func (s *SQLiteStore) UpdateInterview(ctx context.Context, id string, patch models.InterviewPatch) (models.Interview, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return models.Interview{}, err
	}
	defer func() { _ = tx.Rollback() }()

	row := tx.QueryRowContext(ctx,
		`SELECT `+interviewColumns+` FROM interviews WHERE id = ?`, id)
	iv, err := scanInterview(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Interview{}, ErrNotFound
	}
	if err != nil {
		return models.Interview{}, err
	}

	patch.Apply(&iv)
	args := append(interviewArgs(iv)[1:], id)
	_, err = tx.ExecContext(ctx,
		`UPDATE interviews SET candidate_id = ?, candidate_name = ?, position = ?, date = ?,
		 type = ?, status = ?, score = ?, notes = ?, template_id = ? WHERE id = ?`, args...)
	if err != nil {
		return models.Interview{}, err
	}
	return iv, tx.Commit()
}

// DeleteInterview removes the interview with the given id.
func (s *SQLiteStore) DeleteInterview(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM interviews WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

const templateColumns = `id, name, description, category, questions, question_count, created_date, created_by, usage_count, is_favorite`

func scanTemplate(row interface{ Scan(...any) error }) (models.Template, error) {
	var tpl models.Template
	var questionsJSON string
	err := row.Scan(&tpl.ID, &tpl.Name, &tpl.Description, &tpl.Category, &questionsJSON,
		&tpl.QuestionCount, &tpl.CreatedDate, &tpl.CreatedBy, &tpl.UsageCount, &tpl.IsFavorite)
	if err != nil {
		return models.Template{}, err
	}
	if err := json.Unmarshal([]byte(questionsJSON), &tpl.Questions); err != nil {
		return models.Template{}, fmt.Errorf("failed to unmarshal questions: %w", err)
	}
	return tpl, nil
}

func templateArgs(tpl models.Template) ([]any, error) {
	questions := tpl.Questions
	if questions == nil {
		questions = []models.Question{}
	}
	questionsJSON, err := json.Marshal(questions)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal questions: %w", err)
	}
	return []any{tpl.ID, tpl.Name, tpl.Description, tpl.Category, string(questionsJSON),
		tpl.QuestionCount, tpl.CreatedDate, tpl.CreatedBy, tpl.UsageCount, tpl.IsFavorite}, nil
}

// ListTemplates returns all templates in insertion order.
func (s *SQLiteStore) ListTemplates(ctx context.Context) ([]models.Template, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+templateColumns+` FROM templates ORDER BY rowid`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Template{}
	for rows.Next() {
		tpl, err := scanTemplate(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, tpl)
	}
	return out, rows.Err()
}

// GetTemplate returns the template with the given id.
func (s *SQLiteStore) GetTemplate(ctx context.Context, id string) (models.Template, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+templateColumns+` FROM templates WHERE id = ?`, id)
	tpl, err := scanTemplate(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Template{}, ErrNotFound
	}
	return tpl, err
}

// CreateTemplate inserts tpl, assigning ids to the template and its
// questions.
func (s *SQLiteStore) CreateTemplate(ctx context.Context, tpl models.Template) (models.Template, error) {
	prepareTemplate(&tpl)
	args, err := templateArgs(tpl)
	if err != nil {
		return models.Template{}, err
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO templates (`+templateColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		args...)
	if err != nil {
		return models.Template{}, err
	}
	return tpl, nil
}

// UpdateTemplate merges patch into the stored template inside a
// transaction.
func (s *SQLiteStore) UpdateTemplate(ctx context.Context, id string, patch models.TemplatePatch) (models.Template, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return models.Template{}, err
	}
	defer func() { _ = tx.Rollback() }()

	row := tx.QueryRowContext(ctx,
		`SELECT `+templateColumns+` FROM templates WHERE id = ?`, id)
	tpl, err := scanTemplate(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Template{}, ErrNotFound
	}
	if err != nil {
		return models.Template{}, err
	}

	patch.Apply(&tpl)
	args, err := templateArgs(tpl)
	if err != nil {
		return models.Template{}, err
	}
	args = append(args[1:], id)
	_, err = tx.ExecContext(ctx,
		`UPDATE templates SET name = ?, description = ?, category = ?, questions = ?,
		 question_count = ?, created_date = ?, created_by = ?, usage_count = ?, is_favorite = ?
		 WHERE id = ?`, args...)
	if err != nil {
		return models.Template{}, err
	}
	return tpl, tx.Commit()
}

// DeleteTemplate removes the template with the given id.
func (s *SQLiteStore) DeleteTemplate(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM templates WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// ListPositions returns the known position names.
func (s *SQLiteStore) ListPositions(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT name FROM positions ORDER BY rowid`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		out = append(out, name)
	}
	return out, rows.Err()
}

// GetUserByEmail returns the user with the given email.
func (s *SQLiteStore) GetUserByEmail(ctx context.Context, email string) (models.User, error) {
	var u models.User
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, email, password, role, avatar FROM users WHERE email = ?`, email).
		Scan(&u.ID, &u.Name, &u.Email, &u.Password, &u.Role, &u.Avatar)
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, ErrNotFound
	}
	return u, err
}

// SeedIfEmpty populates the database from seed when no interviews exist
// yet. Positions and users are upserted so a fresh seed always provides a
// way to sign in.
func (s *SQLiteStore) SeedIfEmpty(ctx context.Context, seed Seed) error {
	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM interviews`).Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	for _, iv := range seed.Interviews {
		if _, err := s.CreateInterview(ctx, iv); err != nil {
			return err
		}
	}
	for _, tpl := range seed.Templates {
		if _, err := s.CreateTemplate(ctx, tpl); err != nil {
			return err
		}
	}
	for _, name := range seed.Positions {
		if _, err := s.db.ExecContext(ctx,
			`INSERT OR IGNORE INTO positions (name) VALUES (?)`, name); err != nil {
			return err
		}
	}
	for _, u := range seed.Users {
		if _, err := s.db.ExecContext(ctx,
			`INSERT OR REPLACE INTO users (id, name, email, password, role, avatar) VALUES (?, ?, ?, ?, ?, ?)`,
			u.ID, u.Name, u.Email, u.Password, u.Role, u.Avatar); err != nil {
			return err
		}
	}
	return nil
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
