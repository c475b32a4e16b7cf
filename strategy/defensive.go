package strategy

import (
	"github.com/rs/zerolog/log"

	"ringwars/move"
	"ringwars/ring"
)

// defend strengthens the mine nodes the opponent cannot see. Without any, the
// whole budget goes to one random uncontrolled node to open a new hideout.
func defend(env *Env, r *ring.Ring, acc *move.Accumulator, budget int) {
	budget = min(budget, r.Available())
	if budget <= 0 {
		return
	}
	if hidden := r.Hidden(env.radius()); len(hidden) > 0 {
		spread(Defensive, r, acc, hidden, budget)
		return
	}
	target, ok := r.Pick(r.Owned(ring.Uncontrolled))
	if !ok {
		log.Debug().Msg("defensive: nowhere to hide")
		return
	}
	reinforce(Defensive, r, acc, target.ID, budget)
}
