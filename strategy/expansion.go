package strategy

import (
	"ringwars/move"
	"ringwars/ring"
)

// expand occupies uncontrolled nodes. With fewer resources than free nodes it
// places single resources alternating between both ends of the free list and
// stays away from nodes bordering the opponent, so no edge battle starts by
// accident. Otherwise the budget is split evenly over every free node.
func expand(env *Env, r *ring.Ring, acc *move.Accumulator, budget int) {
	budget = min(budget, r.Available())
	free := r.Owned(ring.Uncontrolled)
	if budget <= 0 || len(free) == 0 {
		return
	}

	if budget < len(free) {
		for _, n := range alternate(free) {
			if budget == 0 {
				return
			}
			if r.NextToOpponent(n.ID) {
				continue
			}
			budget -= reinforce(Expansion, r, acc, n.ID, 1)
		}
		return
	}
	spread(Expansion, r, acc, alternate(free), budget)
}
