// Package sqlite provides SQLite implementations of the NoteStore,
// ElementRepository and UsageStore interfaces.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/Haugenau20/campaign-companion/internal/domain/entities"
	"github.com/Haugenau20/campaign-companion/internal/infrastructure/config"
)

// timeNow returns the current time (can be mocked in tests).
var timeNow = time.Now

// Repository backs the note store, element repository and usage store with
// a single SQLite database.
type Repository struct {
	db   *sql.DB
	path string
}

// NewRepository creates a new SQLite repository.
func NewRepository(cfg config.SQLiteConfig) (*Repository, error) {
	if cfg.Path == "" {
		return nil, errors.New("sqlite path is required")
	}

	db, err := sql.Open("sqlite", cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite database: %w", err)
	}

	// Enable foreign keys for referential integrity
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	// Enable WAL mode for better concurrent read/write performance
	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling WAL mode: %w", err)
	}

	// Set busy timeout to avoid "database is locked" errors
	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting busy timeout: %w", err)
	}

	return &Repository{
		db:   db,
		path: cfg.Path,
	}, nil
}

// Close closes the database connection.
func (r *Repository) Close() error {
	return r.db.Close()
}

// Path returns the database file path.
func (r *Repository) Path() string {
	return r.path
}

// EnsureSchema creates the database schema if it doesn't exist.
func (r *Repository) EnsureSchema(ctx context.Context) error {
	schema := `
	-- Session notes
	CREATE TABLE IF NOT EXISTS notes (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL DEFAULT '',
		content TEXT NOT NULL,
		created_at TIMESTAMP NOT NULL,
		updated_at TIMESTAMP NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_notes_updated ON notes(updated_at);

	-- Candidate entities stored per note
	CREATE TABLE IF NOT EXISTS note_entities (
		id TEXT PRIMARY KEY,
		note_id TEXT NOT NULL REFERENCES notes(id) ON DELETE CASCADE,
		kind TEXT NOT NULL,
		text TEXT NOT NULL,
		confidence REAL NOT NULL DEFAULT 0,
		is_converted INTEGER NOT NULL DEFAULT 0,
		converted_to_id TEXT,
		extra TEXT,
		position INTEGER NOT NULL DEFAULT 0
	);
	CREATE INDEX IF NOT EXISTS idx_note_entities_note ON note_entities(note_id);

	-- Confirmed campaign elements (NPCs, locations, quests, rumors)
	CREATE TABLE IF NOT EXISTS elements (
		id TEXT PRIMARY KEY,
		kind TEXT NOT NULL,
		name TEXT NOT NULL,
		title TEXT NOT NULL DEFAULT '',
		normalized_name TEXT NOT NULL,
		created_at TIMESTAMP NOT NULL,
		UNIQUE(kind, normalized_name)
	);
	CREATE INDEX IF NOT EXISTS idx_elements_kind ON elements(kind);

	-- Per-user extraction usage (one row per user, three windows)
	CREATE TABLE IF NOT EXISTS usage_records (
		user_id TEXT PRIMARY KEY,
		daily_count INTEGER NOT NULL DEFAULT 0,
		daily_limit INTEGER NOT NULL,
		daily_last_reset TIMESTAMP NOT NULL,
		weekly_count INTEGER NOT NULL DEFAULT 0,
		weekly_limit INTEGER NOT NULL,
		weekly_last_reset TIMESTAMP NOT NULL,
		monthly_count INTEGER NOT NULL DEFAULT 0,
		monthly_limit INTEGER NOT NULL,
		monthly_last_reset TIMESTAMP NOT NULL,
		custom_limit INTEGER,
		is_unlimited INTEGER NOT NULL DEFAULT 0,
		last_extraction TIMESTAMP
	);
	`

	_, err := r.db.ExecContext(ctx, schema)
	if err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}
	return nil
}

// GetNote retrieves a note with its stored entities, or nil if not found.
func (r *Repository) GetNote(ctx context.Context, id string) (*entities.Note, error) {
	query := `SELECT id, title, content, created_at, updated_at FROM notes WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)

	var note entities.Note
	err := row.Scan(&note.ID, &note.Title, &note.Content, &note.CreatedAt, &note.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scanning note: %w", err)
	}

	note.Entities, err = r.noteEntities(ctx, id)
	if err != nil {
		return nil, err
	}
	return &note, nil
}

// SaveNote saves or updates a note. Entities are not written here; they are
// managed through ReplaceUnconvertedEntities and MarkEntityConverted.
func (r *Repository) SaveNote(ctx context.Context, note *entities.Note) error {
	if note.ID == "" {
		note.ID = uuid.New().String()
	}
	now := timeNow()
	if note.CreatedAt.IsZero() {
		note.CreatedAt = now
	}
	note.UpdatedAt = now

	query := `
		INSERT INTO notes (id, title, content, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title = excluded.title,
			content = excluded.content,
			updated_at = excluded.updated_at
	`
	_, err := r.db.ExecContext(ctx, query,
		note.ID,
		note.Title,
		note.Content,
		note.CreatedAt,
		note.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("saving note: %w", err)
	}
	return nil
}

// ListNotes lists notes ordered by most recently updated.
func (r *Repository) ListNotes(ctx context.Context, limit int) ([]entities.Note, error) {
	query := `
		SELECT id, title, content, created_at, updated_at
		FROM notes
		ORDER BY updated_at DESC
		LIMIT ?
	`
	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("querying notes: %w", err)
	}
	defer rows.Close()

	notes := make([]entities.Note, 0, limit)
	for rows.Next() {
		var note entities.Note
		if err := rows.Scan(&note.ID, &note.Title, &note.Content, &note.CreatedAt, &note.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scanning note: %w", err)
		}
		notes = append(notes, note)
	}
	return notes, rows.Err()
}

// ReplaceUnconvertedEntities replaces the note's non-converted candidates
// wholesale. Converted rows are never touched.
func (r *Repository) ReplaceUnconvertedEntities(ctx context.Context, noteID string, candidates []entities.CandidateEntity) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM note_entities WHERE note_id = ? AND is_converted = 0`, noteID); err != nil {
		return fmt.Errorf("clearing unconverted entities: %w", err)
	}

	insert := `
		INSERT INTO note_entities (id, note_id, kind, text, confidence, is_converted, converted_to_id, extra, position)
		VALUES (?, ?, ?, ?, ?, 0, NULL, ?, ?)
	`
	for i, c := range candidates {
		id := c.ID
		if id == "" {
			id = uuid.New().String()
		}
		extra, err := marshalExtra(c.Extra)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, insert, id, noteID, string(c.Kind), c.Text, c.Confidence, extra, i); err != nil {
			return fmt.Errorf("inserting candidate entity: %w", err)
		}
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE notes SET updated_at = ? WHERE id = ?`, timeNow(), noteID); err != nil {
		return fmt.Errorf("touching note: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// MarkEntityConverted flips a single candidate's conversion fields. The
// conversion is append-only: a converted row never reverts.
func (r *Repository) MarkEntityConverted(ctx context.Context, noteID, entityID, elementID string) error {
	query := `
		UPDATE note_entities
		SET is_converted = 1, converted_to_id = ?
		WHERE id = ? AND note_id = ?
	`
	result, err := r.db.ExecContext(ctx, query, elementID, entityID, noteID)
	if err != nil {
		return fmt.Errorf("marking entity converted: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("entity not found: %s", entityID)
	}
	return nil
}

// noteEntities loads a note's candidates, converted rows first, then by
// insertion order.
func (r *Repository) noteEntities(ctx context.Context, noteID string) ([]entities.CandidateEntity, error) {
	query := `
		SELECT id, kind, text, confidence, is_converted, converted_to_id, extra
		FROM note_entities
		WHERE note_id = ?
		ORDER BY is_converted DESC, position ASC
	`
	rows, err := r.db.QueryContext(ctx, query, noteID)
	if err != nil {
		return nil, fmt.Errorf("querying note entities: %w", err)
	}
	defer rows.Close()

	var candidates []entities.CandidateEntity
	for rows.Next() {
		var c entities.CandidateEntity
		var kind string
		var convertedTo, extra sql.NullString

		if err := rows.Scan(&c.ID, &kind, &c.Text, &c.Confidence, &c.IsConverted, &convertedTo, &extra); err != nil {
			return nil, fmt.Errorf("scanning note entity: %w", err)
		}
		c.Kind = entities.EntityKind(kind)
		c.ConvertedToID = convertedTo.String

		if extra.Valid && extra.String != "" {
			if err := json.Unmarshal([]byte(extra.String), &c.Extra); err != nil {
				return nil, fmt.Errorf("unmarshaling entity extra: %w", err)
			}
		}
		candidates = append(candidates, c)
	}
	return candidates, rows.Err()
}

// GetCollection returns all elements of the given kind.
func (r *Repository) GetCollection(ctx context.Context, kind entities.EntityKind) ([]entities.CampaignElement, error) {
	query := `
		SELECT id, kind, name, title, created_at
		FROM elements
		WHERE kind = ?
		ORDER BY name ASC
	`
	rows, err := r.db.QueryContext(ctx, query, string(kind))
	if err != nil {
		return nil, fmt.Errorf("querying elements: %w", err)
	}
	defer rows.Close()

	var elems []entities.CampaignElement
	for rows.Next() {
		var e entities.CampaignElement
		var k string
		if err := rows.Scan(&e.ID, &k, &e.Name, &e.Title, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning element: %w", err)
		}
		e.Kind = entities.EntityKind(k)
		elems = append(elems, e)
	}
	return elems, rows.Err()
}

// SaveElement saves or updates an element. Elements are unique per kind by
// normalized name.
func (r *Repository) SaveElement(ctx context.Context, element *entities.CampaignElement) error {
	if element.ID == "" {
		element.ID = uuid.New().String()
	}
	if element.CreatedAt.IsZero() {
		element.CreatedAt = timeNow()
	}

	query := `
		INSERT INTO elements (id, kind, name, title, normalized_name, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(kind, normalized_name) DO UPDATE SET
			name = excluded.name,
			title = excluded.title
	`
	_, err := r.db.ExecContext(ctx, query,
		element.ID,
		string(element.Kind),
		element.Name,
		element.Title,
		entities.NormalizeText(element.Name),
		element.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("saving element: %w", err)
	}
	return nil
}

// FindElementByID finds an element by its ID, or nil if not found.
func (r *Repository) FindElementByID(ctx context.Context, id string) (*entities.CampaignElement, error) {
	query := `SELECT id, kind, name, title, created_at FROM elements WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)

	var e entities.CampaignElement
	var k string
	err := row.Scan(&e.ID, &k, &e.Name, &e.Title, &e.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scanning element: %w", err)
	}
	e.Kind = entities.EntityKind(k)
	return &e, nil
}

// Get returns the user's usage record, seeding a zeroed record from the
// defaults when none exists.
func (r *Repository) Get(ctx context.Context, userID string, defaults entities.UsageRecord) (*entities.UsageRecord, error) {
	if err := r.seedUsageRecord(ctx, r.db, userID, defaults); err != nil {
		return nil, err
	}
	return r.scanUsageRecord(r.db.QueryRowContext(ctx, selectUsageQuery, userID))
}

// Update loads the user's record, applies fn, and persists the result as one
// transaction. The seeding INSERT takes the write lock up front so the
// read-evaluate-write cycle cannot interleave with a concurrent reservation.
func (r *Repository) Update(ctx context.Context, userID string, defaults entities.UsageRecord, fn func(*entities.UsageRecord) error) (*entities.UsageRecord, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if err := r.seedUsageRecord(ctx, tx, userID, defaults); err != nil {
		return nil, err
	}

	rec, err := r.scanUsageRecord(tx.QueryRowContext(ctx, selectUsageQuery, userID))
	if err != nil {
		return nil, err
	}

	if err := fn(rec); err != nil {
		return nil, err
	}

	update := `
		UPDATE usage_records SET
			daily_count = ?, daily_limit = ?, daily_last_reset = ?,
			weekly_count = ?, weekly_limit = ?, weekly_last_reset = ?,
			monthly_count = ?, monthly_limit = ?, monthly_last_reset = ?,
			custom_limit = ?, is_unlimited = ?, last_extraction = ?
		WHERE user_id = ?
	`
	var customLimit sql.NullInt64
	if rec.CustomLimit != nil {
		customLimit = sql.NullInt64{Int64: int64(*rec.CustomLimit), Valid: true}
	}
	var lastExtraction sql.NullTime
	if rec.LastExtraction != nil {
		lastExtraction = sql.NullTime{Time: *rec.LastExtraction, Valid: true}
	}

	if _, err := tx.ExecContext(ctx, update,
		rec.Daily.Count, rec.Daily.Limit, rec.Daily.LastReset,
		rec.Weekly.Count, rec.Weekly.Limit, rec.Weekly.LastReset,
		rec.Monthly.Count, rec.Monthly.Limit, rec.Monthly.LastReset,
		customLimit, rec.IsUnlimited, lastExtraction,
		userID,
	); err != nil {
		return nil, fmt.Errorf("updating usage record: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing usage record: %w", err)
	}
	return rec, nil
}

const selectUsageQuery = `
	SELECT user_id,
		daily_count, daily_limit, daily_last_reset,
		weekly_count, weekly_limit, weekly_last_reset,
		monthly_count, monthly_limit, monthly_last_reset,
		custom_limit, is_unlimited, last_extraction
	FROM usage_records
	WHERE user_id = ?
`

// execer abstracts *sql.DB and *sql.Tx for the seeding insert.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// seedUsageRecord inserts a zeroed record for the user if absent, mirroring
// the INSERT OR IGNORE pattern used for elements so seeding is race-free.
func (r *Repository) seedUsageRecord(ctx context.Context, db execer, userID string, defaults entities.UsageRecord) error {
	insert := `
		INSERT OR IGNORE INTO usage_records (
			user_id,
			daily_count, daily_limit, daily_last_reset,
			weekly_count, weekly_limit, weekly_last_reset,
			monthly_count, monthly_limit, monthly_last_reset,
			is_unlimited
		) VALUES (?, 0, ?, ?, 0, ?, ?, 0, ?, ?, 0)
	`
	_, err := db.ExecContext(ctx, insert,
		userID,
		defaults.Daily.Limit, defaults.Daily.LastReset,
		defaults.Weekly.Limit, defaults.Weekly.LastReset,
		defaults.Monthly.Limit, defaults.Monthly.LastReset,
	)
	if err != nil {
		return fmt.Errorf("seeding usage record: %w", err)
	}
	return nil
}

// rowScanner abstracts *sql.Row for usage record scanning.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanUsageRecord scans one usage row into a record.
func (r *Repository) scanUsageRecord(row rowScanner) (*entities.UsageRecord, error) {
	var rec entities.UsageRecord
	var customLimit sql.NullInt64
	var lastExtraction sql.NullTime

	err := row.Scan(
		&rec.UserID,
		&rec.Daily.Count, &rec.Daily.Limit, &rec.Daily.LastReset,
		&rec.Weekly.Count, &rec.Weekly.Limit, &rec.Weekly.LastReset,
		&rec.Monthly.Count, &rec.Monthly.Limit, &rec.Monthly.LastReset,
		&customLimit, &rec.IsUnlimited, &lastExtraction,
	)
	if err != nil {
		return nil, fmt.Errorf("scanning usage record: %w", err)
	}

	if customLimit.Valid {
		limit := int(customLimit.Int64)
		rec.CustomLimit = &limit
	}
	if lastExtraction.Valid {
		t := lastExtraction.Time
		rec.LastExtraction = &t
	}
	return &rec, nil
}

// marshalExtra serializes a candidate's extra map, or NULL when empty.
func marshalExtra(extra map[string]any) (sql.NullString, error) {
	if len(extra) == 0 {
		return sql.NullString{}, nil
	}
	data, err := json.Marshal(extra)
	if err != nil {
		return sql.NullString{}, fmt.Errorf("marshaling entity extra: %w", err)
	}
	return sql.NullString{String: string(data), Valid: true}, nil
}
