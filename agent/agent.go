// Package agent plays one round: it reads the board, reflects on the previous
// round, picks and plays a strategy and writes the move and its notes.
package agent

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"ringwars/analyzer"
	"ringwars/meta"
	"ringwars/move"
	"ringwars/notes"
	"ringwars/ring"
	"ringwars/snapshot"
	"ringwars/stats"
	"ringwars/strategy"
)

type Option func(*Agent)

func WithTuning(t meta.Tuning) Option {
	return func(a *Agent) {
		a.tuning = t
	}
}

// WithStats records the outcome of every round in store.
func WithStats(store *stats.Store) Option {
	return func(a *Agent) {
		a.stats = store
	}
}

// WithPicker sets the tie-break source used on the board.
func WithPicker(p ring.Picker) Option {
	return func(a *Agent) {
		a.picker = p
	}
}

// Agent plays the rounds of one game from the files in its directory.
type Agent struct {
	dir    string
	name   string
	tuning meta.Tuning
	stats  *stats.Store
	picker ring.Picker
}

func New(dir string, options ...Option) *Agent {
	a := &Agent{
		dir:    dir,
		name:   filepath.Base(dir),
		tuning: meta.Defaults(),
		picker: ring.NewPicker(1),
	}
	for _, option := range options {
		option(a)
	}
	return a
}

// Report summarises a played round.
type Report struct {
	Round    int
	Kind     strategy.Kind
	Move     *move.Accumulator
	Memory   *notes.Memory
	FellBack bool
}

func (a *Agent) path(name string) string {
	return filepath.Join(a.dir, name)
}

// PlayRound plays the given round. Only failing to write the output files is
// an error; everything else degrades to a safe move.
func (a *Agent) PlayRound(ctx context.Context, round int) (Report, error) {
	board, err := snapshot.ReadFile(a.path(strconv.Itoa(round)+meta.SNAPSHOT_EXT), ring.WithPicker(a.picker))
	if err != nil {
		log.Error().Err(err).Msgf("round %d: unusable snapshot, playing the empty move", round)
		return a.abort(round)
	}

	if a.stats != nil {
		if outcome, err := a.stats.Record(ctx, a.name, round, board); err != nil {
			log.Warn().Err(err).Msg("could not record statistics")
		} else if outcome != stats.Pending {
			log.Info().Msgf("game over for %s: %s", a.name, outcome)
		}
	}

	memory := a.recall(round, board)
	previous, err := snapshot.ReadPrediction(a.path(meta.PREDICTION_FILE))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Warn().Err(err).Msg("ignoring the prediction of the previous round")
	}
	analyzer.Reflect(previous, board, memory, a.tuning)

	kind := analyzer.Select(board, memory, a.tuning)
	env := &strategy.Env{Memory: memory, Tuning: a.tuning}
	result := strategy.Play(kind, env, board)
	log.Info().Msgf("round %d: ratios %v, move [%s]", round, memory.Ratios, strings.Join(result.Move.Lines(), " "))

	if err := snapshot.WriteMove(a.path(meta.MOVE_FILE), result.Move); err != nil {
		return Report{}, err
	}
	if err := snapshot.WritePrediction(a.path(meta.PREDICTION_FILE), result.Board); err != nil {
		return Report{}, err
	}
	if err := notes.WriteFile(a.path(meta.NOTES_FILE), memory); err != nil {
		return Report{}, err
	}
	return Report{Round: round, Kind: result.Kind, Move: result.Move, Memory: memory, FellBack: result.FellBack}, nil
}

// recall loads the notes of the previous round, or starts afresh with a
// visibility radius estimated from the board.
func (a *Agent) recall(round int, board *ring.Ring) *notes.Memory {
	memory, err := notes.ReadFile(a.path(meta.NOTES_FILE))
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			log.Warn().Err(err).Msg("starting with fresh notes")
		}
		memory = notes.Default(round, a.radius(board))
	}
	if memory.VisibilityRadius <= 0 {
		memory.VisibilityRadius = a.radius(board)
	}
	memory.Round = round
	return memory
}

func (a *Agent) radius(board *ring.Ring) int {
	if radius, ok := board.EstimateRadius(); ok && radius > 0 {
		return radius
	}
	return a.tuning.DefaultVisibility
}

// abort writes the empty move, leaves the notes file as it is (writing
// defaults only when there is none) and drops the prediction so the next round
// does not compare against a stale board.
func (a *Agent) abort(round int) (Report, error) {
	empty := move.New()
	if err := snapshot.WriteMove(a.path(meta.MOVE_FILE), empty); err != nil {
		return Report{}, err
	}
	if err := os.Remove(a.path(meta.PREDICTION_FILE)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Report{}, err
	}

	memory, err := notes.ReadFile(a.path(meta.NOTES_FILE))
	switch {
	case err == nil:
	case errors.Is(err, fs.ErrNotExist):
		memory = notes.Default(round, a.tuning.DefaultVisibility)
		if err := notes.WriteFile(a.path(meta.NOTES_FILE), memory); err != nil {
			return Report{}, err
		}
	default:
		log.Warn().Err(err).Msg("leaving unreadable notes as they are")
		memory = notes.Default(round, a.tuning.DefaultVisibility)
	}
	return Report{Round: round, Kind: strategy.Empty, Move: empty, Memory: memory}, nil
}
