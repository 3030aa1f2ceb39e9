package db

import (
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/dasdy/keyview/model"

	_ "github.com/mattn/go-sqlite3"
)

// MemoryPath keeps the log inside the process; nothing is written to disk.
const MemoryPath = ":memory:"

type SQLiteStorage struct {
	db  *sql.DB
	now func() time.Time
}

func InitDBStorage(db *sql.DB) error {
	sqlStmt := `
	create table if not exists transitions(label text, pressed bool, ts datetime);`

	_, err := db.Exec(sqlStmt)
	if err != nil {
		return fmt.Errorf("could not create table: %w", err)
	}

	sqlStmt = `create index if not exists transitions_tsix on transitions (ts ASC);`

	_, err = db.Exec(sqlStmt)
	if err != nil {
		return fmt.Errorf("could not create index: %w", err)
	}

	return nil
}

// NewStorageFromConnection uses an already opened connection. now may be nil.
func NewStorageFromConnection(conn *sql.DB, now func() time.Time) (*SQLiteStorage, error) {
	err := InitDBStorage(conn)
	if err != nil {
		return nil, err
	}

	if now == nil {
		now = time.Now
	}

	return &SQLiteStorage{db: conn, now: now}, nil
}

// NewMemoryStorage opens an in-process sqlite database. It lives as long as the
// returned storage.
func NewMemoryStorage() (*SQLiteStorage, error) {
	conn, err := sql.Open("sqlite3", MemoryPath)
	if err != nil {
		return nil, fmt.Errorf("could not open event log: %w", err)
	}

	// every new connection to :memory: would see an empty database
	conn.SetMaxOpenConns(1)

	storage, err := NewStorageFromConnection(conn, nil)
	if err != nil {
		conn.Close()

		return nil, err
	}

	return storage, nil
}

func (s *SQLiteStorage) Store(tr model.Transition) error {
	_, err := s.db.Exec(`insert into transitions(label, pressed, ts) values(?, ?, ?)`,
		tr.Label, tr.Pressed, s.now().UTC())
	if err != nil {
		return fmt.Errorf("could not store transition %s: %w", tr.Label, err)
	}

	return nil
}

// GatherAll counts presses per label, most pressed first.
func (s *SQLiteStorage) GatherAll() ([]model.LabelCount, error) {
	rows, err := s.db.Query(
		`select label, count(*) as cnt
        from transitions
        where pressed = true
        group by label
        order by cnt desc, label`)
	if err != nil {
		return nil, fmt.Errorf("could not count presses: %w", err)
	}

	defer rows.Close()

	result := make([]model.LabelCount, 0)

	for rows.Next() {
		var item model.LabelCount

		err = rows.Scan(&item.Label, &item.Count)
		if err != nil {
			return nil, fmt.Errorf("could not read press count: %w", err)
		}

		result = append(result, item)
	}

	return result, rows.Err()
}

// Recent returns the last limit transitions, newest first.
func (s *SQLiteStorage) Recent(limit int) ([]model.LoggedTransition, error) {
	rows, err := s.db.Query(
		`select label, pressed, ts
        from transitions
        order by ts desc, rowid desc
        limit ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("could not read recent transitions: %w", err)
	}

	defer rows.Close()

	result := make([]model.LoggedTransition, 0, limit)

	for rows.Next() {
		var item model.LoggedTransition

		err = rows.Scan(&item.Label, &item.Pressed, &item.Timestamp)
		if err != nil {
			return nil, fmt.Errorf("could not read transition: %w", err)
		}

		result = append(result, item)
	}

	return result, rows.Err()
}

func (s *SQLiteStorage) Close() {
	err := s.db.Close()
	if err != nil {
		slog.Error("could not close event log", "error", err)
	}
}
