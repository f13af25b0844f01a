// Package store persists evaluated candidates and job descriptions in a
// local SQLite database and derives hiring analytics from them.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/mitchellh/mapstructure"
)

// Candidate is one evaluated resume with its match outcome.
type Candidate struct {
	ID        string
	Name      string
	Email     string
	Phone     string
	Score     int
	Category  string
	Details   CandidateDetails
	CreatedAt time.Time
}

// CandidateDetails holds the variable-shaped part of a candidate record,
// stored as a JSON payload column.
type CandidateDetails struct {
	Skills      []string `mapstructure:"skills"`
	Education   []string `mapstructure:"education"`
	Experience  []string `mapstructure:"experience"`
	Summary     string   `mapstructure:"summary"`
	Suggestions []string `mapstructure:"suggestions"`
	UsedAI      bool     `mapstructure:"used_ai"`
	Model       string   `mapstructure:"model"`
}

// Job is one stored job description.
type Job struct {
	ID          string
	Title       string
	Description string
	CreatedAt   time.Time
}

// SkillCount is one entry of the top-skills ranking.
type SkillCount struct {
	Skill string
	Count int
}

// Bucket is one range of the match score distribution.
type Bucket struct {
	Range string
	Count int
}

// Analytics aggregates the stored candidates.
type Analytics struct {
	TotalCandidates   int
	AverageScore      float64
	TopSkills         []SkillCount
	MatchDistribution []Bucket
}

const topSkillCount = 10

// Store manages the SQLite database.
type Store struct {
	db *sql.DB
}

// Open opens or creates the database at path and ensures the schema.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS candidates (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			email TEXT,
			phone TEXT,
			score INTEGER NOT NULL,
			category TEXT NOT NULL,
			payload TEXT NOT NULL,
			created_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_candidates_score ON candidates(score)`,
		`CREATE TABLE IF NOT EXISTS jobs (
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			description TEXT NOT NULL,
			created_at TEXT NOT NULL
		)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}

	return nil
}

// SaveCandidate inserts or replaces a candidate record. An empty ID is
// assigned from the current time.
func (s *Store) SaveCandidate(ctx context.Context, c *Candidate) error {
	if c.ID == "" {
		c.ID = strconv.FormatInt(time.Now().UnixNano(), 10)
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now().UTC()
	}

	payload, err := json.Marshal(map[string]any{
		"skills":      c.Details.Skills,
		"education":   c.Details.Education,
		"experience":  c.Details.Experience,
		"summary":     c.Details.Summary,
		"suggestions": c.Details.Suggestions,
		"used_ai":     c.Details.UsedAI,
		"model":       c.Details.Model,
	})
	if err != nil {
		return fmt.Errorf("encoding candidate payload: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO candidates (id, name, email, phone, score, category, payload, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		c.ID, c.Name, c.Email, c.Phone, c.Score, c.Category,
		string(payload), c.CreatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("inserting candidate: %w", err)
	}

	return nil
}

// Candidates returns all stored candidates, newest first.
func (s *Store) Candidates(ctx context.Context) ([]Candidate, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, email, phone, score, category, payload, created_at
		 FROM candidates ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("querying candidates: %w", err)
	}
	defer rows.Close()

	var out []Candidate
	for rows.Next() {
		var c Candidate
		var payload, createdAt string
		if err := rows.Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.Score, &c.Category, &payload, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning candidate: %w", err)
		}

		if err := decodePayload(payload, &c.Details); err != nil {
			return nil, fmt.Errorf("decoding candidate %s: %w", c.ID, err)
		}
		if t, err := time.Parse(time.RFC3339Nano, createdAt); err == nil {
			c.CreatedAt = t
		}

		out = append(out, c)
	}

	return out, rows.Err()
}

// decodePayload parses the JSON payload column through a lenient decoder,
// so rows written by older schema revisions with extra or missing fields
// still load.
func decodePayload(payload string, details *CandidateDetails) error {
	var raw map[string]any
	if err := json.Unmarshal([]byte(payload), &raw); err != nil {
		return fmt.Errorf("parsing payload: %w", err)
	}
	if err := mapstructure.Decode(raw, details); err != nil {
		return fmt.Errorf("decoding payload: %w", err)
	}
	return nil
}

// SaveJob inserts or replaces a job description. An empty ID is assigned
// from the current time.
func (s *Store) SaveJob(ctx context.Context, j *Job) error {
	if j.ID == "" {
		j.ID = strconv.FormatInt(time.Now().UnixNano(), 10)
	}
	if j.CreatedAt.IsZero() {
		j.CreatedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO jobs (id, title, description, created_at) VALUES (?, ?, ?, ?)`,
		j.ID, j.Title, j.Description, j.CreatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("inserting job: %w", err)
	}

	return nil
}

// Jobs returns all stored job descriptions, newest first.
func (s *Store) Jobs(ctx context.Context) ([]Job, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, title, description, created_at FROM jobs ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("querying jobs: %w", err)
	}
	defer rows.Close()

	var out []Job
	for rows.Next() {
		var j Job
		var createdAt string
		if err := rows.Scan(&j.ID, &j.Title, &j.Description, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning job: %w", err)
		}
		if t, err := time.Parse(time.RFC3339Nano, createdAt); err == nil {
			j.CreatedAt = t
		}
		out = append(out, j)
	}

	return out, rows.Err()
}

// Analytics aggregates all stored candidates: total count, average score,
// the ten most frequent skills and the match score distribution.
func (s *Store) Analytics(ctx context.Context) (*Analytics, error) {
	candidates, err := s.Candidates(ctx)
	if err != nil {
		return nil, err
	}

	a := &Analytics{
		TotalCandidates: len(candidates),
		MatchDistribution: []Bucket{
			{Range: "90-100%"},
			{Range: "80-89%"},
			{Range: "70-79%"},
			{Range: "60-69%"},
			{Range: "50-59%"},
			{Range: "0-49%"},
		},
	}

	if len(candidates) == 0 {
		return a, nil
	}

	skillCounts := make(map[string]int)
	total := 0
	for _, c := range candidates {
		total += c.Score
		for _, skill := range c.Details.Skills {
			skillCounts[skill]++
		}

		switch {
		case c.Score >= 90:
			a.MatchDistribution[0].Count++
		case c.Score >= 80:
			a.MatchDistribution[1].Count++
		case c.Score >= 70:
			a.MatchDistribution[2].Count++
		case c.Score >= 60:
			a.MatchDistribution[3].Count++
		case c.Score >= 50:
			a.MatchDistribution[4].Count++
		default:
			a.MatchDistribution[5].Count++
		}
	}
	a.AverageScore = float64(total) / float64(len(candidates))

	for skill, count := range skillCounts {
		a.TopSkills = append(a.TopSkills, SkillCount{Skill: skill, Count: count})
	}
	sort.Slice(a.TopSkills, func(i, j int) bool {
		if a.TopSkills[i].Count != a.TopSkills[j].Count {
			return a.TopSkills[i].Count > a.TopSkills[j].Count
		}
		return a.TopSkills[i].Skill < a.TopSkills[j].Skill
	})
	if len(a.TopSkills) > topSkillCount {
		a.TopSkills = a.TopSkills[:topSkillCount]
	}

	return a, nil
}
