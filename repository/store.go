package repository

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// Store owns the SQLite handle shared by the sqlite-backed repositories.
type Store struct {
	db *sql.DB
}

// NewStore opens (or creates) the database and runs migrations.
func NewStore(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL so status polling reads do not block application writes.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			full_name   TEXT NOT NULL,
			email       TEXT NOT NULL UNIQUE,
			mobile      TEXT,
			password    TEXT NOT NULL,
			role        TEXT NOT NULL,
			aadhar      TEXT,
			pan         TEXT,
			cibil_score INTEGER NOT NULL DEFAULT 0,
			created_at  INTEGER NOT NULL
		)`,

		`CREATE TABLE IF NOT EXISTS loans (
			id           INTEGER PRIMARY KEY AUTOINCREMENT,
			user_id      INTEGER NOT NULL REFERENCES users(id),
			loan_type    TEXT NOT NULL,
			amount       REAL NOT NULL,
			term_months  INTEGER NOT NULL,
			monthly_rate REAL NOT NULL,
			purpose      TEXT,
			status       TEXT NOT NULL,
			applied_date INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_loans_user ON loans(user_id)`,
		`CREATE INDEX IF NOT EXISTS idx_loans_status ON loans(status)`,

		`CREATE TABLE IF NOT EXISTS documents (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			user_id     INTEGER NOT NULL REFERENCES users(id),
			loan_id     INTEGER NOT NULL REFERENCES loans(id),
			kind        TEXT NOT NULL,
			file_name   TEXT NOT NULL,
			path        TEXT NOT NULL,
			uploaded_at INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_documents_loan ON documents(loan_id)`,

		`CREATE TABLE IF NOT EXISTS installments (
			id       INTEGER PRIMARY KEY AUTOINCREMENT,
			loan_id  INTEGER NOT NULL REFERENCES loans(id),
			number   INTEGER NOT NULL,
			due_date INTEGER NOT NULL,
			amount   REAL NOT NULL,
			paid     INTEGER NOT NULL DEFAULT 0,
			overdue  INTEGER NOT NULL DEFAULT 0
		)`,
		`CREATE INDEX IF NOT EXISTS idx_installments_loan ON installments(loan_id)`,
		`CREATE INDEX IF NOT EXISTS idx_installments_due ON installments(due_date, paid)`,
	}

	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("exec %q: %w", stmt[:40], err)
		}
	}
	return nil
}

func (s *Store) Close() error {
	return s.db.Close()
}
