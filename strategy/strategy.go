package strategy

import (
	"github.com/rs/zerolog/log"

	"ringwars/meta"
	"ringwars/move"
	"ringwars/notes"
	"ringwars/ring"
)

// Kind names a move strategy.
type Kind int

const (
	Empty Kind = iota
	Expansion
	Consolidation
	AttackMax
	AttackMin
	Defensive
	Mixed
	FallBack
)

var kindNames = [...]string{"empty", "expansion", "consolidation", "attack-max", "attack-min", "defensive", "mixed", "fallback"}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "invalid"
	}
	return kindNames[k]
}

// Env is what a strategy needs beyond the ring: the opponent model it reads
// and records into, and the thresholds it plays with.
type Env struct {
	Memory *notes.Memory
	Tuning meta.Tuning
}

func (e *Env) radius() int {
	return e.Memory.VisibilityRadius
}

// run spends at most budget resources of r on behalf of one basic strategy.
type run func(env *Env, r *ring.Ring, acc *move.Accumulator, budget int)

var basic = map[Kind]run{
	Expansion:     expand,
	Consolidation: consolidate,
	AttackMax:     attack(AttackMax),
	AttackMin:     attack(AttackMin),
	Defensive:     defend,
}

// mixOrder is the order the mixed strategy runs the basic strategies in,
// with the ratio slot funding each of them.
var mixOrder = []struct {
	kind Kind
	slot notes.Slot
}{
	{AttackMax, notes.AttackMax},
	{AttackMin, notes.AttackMin},
	{Expansion, notes.Expansion},
	{Consolidation, notes.Consolidation},
	{Defensive, notes.Defensive},
}

// Move runs kind with the whole budget of the round and returns the resulting
// move. r is mutated to the board after the move.
func Move(kind Kind, env *Env, r *ring.Ring) *move.Accumulator {
	acc := move.New()
	switch kind {
	case Empty:
		return acc
	case FallBack:
		stripToGarrison(kind, r, acc)
	case Mixed:
		stripToGarrison(kind, r, acc)
		total := r.Available()
		for _, step := range mixOrder {
			ratio := env.Memory.Ratios[step.slot]
			if ratio <= 0 {
				continue
			}
			budget := min(int(float64(total)*ratio), r.Available())
			log.Debug().Msgf("mixed: %s gets %d of %d", step.kind, budget, total)
			basic[step.kind](env, r, acc, budget)
		}
	default:
		strategy, ok := basic[kind]
		if !ok {
			log.Error().Msgf("no strategy %d, playing the empty move", kind)
			return acc
		}
		stripToGarrison(kind, r, acc)
		strategy(env, r, acc, r.Available())
	}
	topUpLeftover(kind, env, r, acc)
	return acc
}

// Extend runs the basic strategy kind with fraction of the currently available
// resources, adding to acc. A fraction of zero or less does nothing.
func Extend(kind Kind, env *Env, r *ring.Ring, acc *move.Accumulator, fraction float64) *move.Accumulator {
	if fraction <= 0 {
		return acc
	}
	strategy, ok := basic[kind]
	if !ok {
		log.Warn().Msgf("%s cannot run on part of the budget", kind)
		return acc
	}
	strategy(env, r, acc, int(float64(r.Available())*min(fraction, 1)))
	return acc
}

// Result is a validated move together with the board it leaves behind.
type Result struct {
	Kind     Kind
	Move     *move.Accumulator
	Board    *ring.Ring
	FellBack bool
}

// Play runs kind on a copy of pristine and validates the move. The memory is
// rolled back if the move has to be replaced.
func Play(kind Kind, env *Env, pristine *ring.Ring) Result {
	before := env.Memory.Clone()
	board := pristine.Clone()
	acc := Move(kind, env, board)
	result := Finalize(env, pristine, Result{Kind: kind, Move: acc, Board: board})
	if result.FellBack {
		*env.Memory = *before
	}
	return result
}

// Finalize checks the move against the maximum of the round. A move over the
// maximum is discarded as a whole and replaced by the FallBack move computed
// on a fresh copy of pristine.
func Finalize(env *Env, pristine *ring.Ring, played Result) Result {
	err := played.Move.Check(pristine.MaxThisRound())
	if err == nil {
		return played
	}
	log.Warn().Err(err).Msgf("%s produced an invalid move, falling back", played.Kind)
	board := pristine.Clone()
	return Result{
		Kind:     FallBack,
		Move:     Move(FallBack, env, board),
		Board:    board,
		FellBack: true,
	}
}
