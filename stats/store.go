// Package stats keeps a win/loss record per agent across games.
package stats

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"ringwars/ring"
)

// Outcome is how a game ended for the agent, if it has.
type Outcome string

const (
	Pending Outcome = ""
	Win     Outcome = "win"
	Loss    Outcome = "loss"
)

// Judge reads the outcome off a board. The agent has won when it sees the
// whole ring without an opponent node, and lost when it holds nothing.
func Judge(r *ring.Ring) Outcome {
	switch {
	case r.VisibleShare() == 1 && !r.OpponentVisible():
		return Win
	case r.Count(ring.Mine) == 0:
		return Loss
	default:
		return Pending
	}
}

type Store struct {
	db *sql.DB
}

// Open opens or creates the statistics database at path.
func Open(path string) (*Store, error) {
	if path == "" {
		return nil, fmt.Errorf("empty stats path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)

	stmts := []string{
		"PRAGMA busy_timeout=5000;",
		`CREATE TABLE IF NOT EXISTS games (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			agent      TEXT NOT NULL,
			started_at TEXT NOT NULL,
			last_round INTEGER NOT NULL DEFAULT 0,
			outcome    TEXT NOT NULL DEFAULT ''
		);`,
		`CREATE INDEX IF NOT EXISTS games_agent ON games(agent, id);`,
	}
	for _, s := range stmts {
		if _, err := db.Exec(s); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("init stats schema: %w", err)
		}
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Record judges the board of a round. Round 1 starts a new game for agent.
// A game is settled by its first outcome; later rounds of it are ignored.
func (s *Store) Record(ctx context.Context, agent string, round int, r *ring.Ring) (Outcome, error) {
	if round == 1 {
		if _, err := s.newGame(ctx, agent); err != nil {
			return Pending, err
		}
	}

	var id int64
	var settled string
	err := s.db.QueryRowContext(ctx,
		`SELECT id, outcome FROM games WHERE agent = ? ORDER BY id DESC LIMIT 1`, agent,
	).Scan(&id, &settled)
	if errors.Is(err, sql.ErrNoRows) {
		id, err = s.newGame(ctx, agent)
	}
	if err != nil {
		return Pending, fmt.Errorf("current game of %s: %w", agent, err)
	}
	if Outcome(settled) != Pending {
		return Pending, nil
	}

	outcome := Judge(r)
	_, err = s.db.ExecContext(ctx,
		`UPDATE games SET last_round = ?, outcome = ? WHERE id = ?`, round, string(outcome), id)
	if err != nil {
		return Pending, fmt.Errorf("record round %d of %s: %w", round, agent, err)
	}
	return outcome, nil
}

func (s *Store) newGame(ctx context.Context, agent string) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO games(agent, started_at) VALUES(?, ?)`, agent, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return 0, fmt.Errorf("start game of %s: %w", agent, err)
	}
	return res.LastInsertId()
}

// Tally counts the games agent has won and lost.
func (s *Store) Tally(ctx context.Context, agent string) (wins, losses int, err error) {
	err = s.db.QueryRowContext(ctx,
		`SELECT
			COALESCE(SUM(CASE WHEN outcome = ? THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN outcome = ? THEN 1 ELSE 0 END), 0)
		FROM games WHERE agent = ?`, string(Win), string(Loss), agent,
	).Scan(&wins, &losses)
	if err != nil {
		return 0, 0, fmt.Errorf("tally %s: %w", agent, err)
	}
	return wins, losses, nil
}
