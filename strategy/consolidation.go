package strategy

import (
	"sort"

	"ringwars/move"
	"ringwars/ring"
)

// consolidate fortifies the mine nodes the opponent can see, closest to the
// opponent first. When the budget cannot cover them all, the farthest ones are
// given up and their resources go to the rest.
func consolidate(env *Env, r *ring.Ring, acc *move.Accumulator, budget int) {
	budget = min(budget, r.Available())
	if budget <= 0 {
		return
	}
	exposed := r.Exposed(env.radius())
	distance := make(map[int]int, len(exposed))
	for _, n := range exposed {
		distance[n.ID], _ = r.OpponentDistance(n.ID)
	}
	sort.SliceStable(exposed, func(i, j int) bool {
		return distance[exposed[i].ID] < distance[exposed[j].ID]
	})

	for len(exposed) > 0 && budget < len(exposed) {
		farthest := exposed[len(exposed)-1]
		exposed = exposed[:len(exposed)-1]
		budget += evacuate(Consolidation, env, r, acc, farthest.ID)
	}
	spread(Consolidation, r, acc, exposed, budget)
}
