// Package querylog persists search queries and their top results to a
// local SQLite database, the way the teacher's db.go keeps crawl and
// index state: a single *sql.DB behind a mutex, schema created on open.
package querylog

import (
	"database/sql"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// Log wraps a SQLite-backed query history. Safe for concurrent use.
type Log struct {
	mu sync.Mutex
	db *sql.DB
}

const createQueries = `
CREATE TABLE IF NOT EXISTS queries (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	query TEXT NOT NULL,
	result_count INTEGER NOT NULL,
	elapsed_ms REAL NOT NULL,
	asked_at TIMESTAMP NOT NULL
);
`

const createResults = `
CREATE TABLE IF NOT EXISTS query_results (
	query_id INTEGER,
	rank INTEGER,
	doc_id INTEGER,
	title TEXT,
	score REAL,
	FOREIGN KEY(query_id) REFERENCES queries(id)
);
`

// Open opens (creating if absent) the SQLite database at path and ensures
// the querylog schema exists.
func Open(path string) (*Log, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(createQueries); err != nil {
		db.Close()
		return nil, err
	}
	if _, err := db.Exec(createResults); err != nil {
		db.Close()
		return nil, err
	}
	return &Log{db: db}, nil
}

// Close releases the underlying database handle.
func (l *Log) Close() error {
	return l.db.Close()
}

// ResultRow is one ranked result to record alongside a query.
type ResultRow struct {
	Rank   int
	DocID  int32
	Title  string
	Score  float64
}

// Record inserts one query and its top results as a single transaction.
func (l *Log) Record(query string, elapsed time.Duration, results []ResultRow) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	tx, err := l.db.Begin()
	if err != nil {
		return err
	}

	res, err := tx.Exec(
		`INSERT INTO queries (query, result_count, elapsed_ms, asked_at) VALUES (?, ?, ?, ?)`,
		query, len(results), elapsed.Seconds()*1000, time.Now(),
	)
	if err != nil {
		tx.Rollback()
		return err
	}

	queryID, err := res.LastInsertId()
	if err != nil {
		tx.Rollback()
		return err
	}

	stmt, err := tx.Prepare(
		`INSERT INTO query_results (query_id, rank, doc_id, title, score) VALUES (?, ?, ?, ?, ?)`,
	)
	if err != nil {
		tx.Rollback()
		return err
	}
	defer stmt.Close()

	for _, r := range results {
		if _, err := stmt.Exec(queryID, r.Rank, r.DocID, r.Title, r.Score); err != nil {
			tx.Rollback()
			return err
		}
	}

	return tx.Commit()
}

// RecentQueries returns the last n queries, most recent first.
func (l *Log) RecentQueries(n int) ([]string, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	rows, err := l.db.Query(`SELECT query FROM queries ORDER BY id DESC LIMIT ?`, n)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var queries []string
	for rows.Next() {
		var q string
		if err := rows.Scan(&q); err != nil {
			return nil, err
		}
		queries = append(queries, q)
	}
	return queries, rows.Err()
}
