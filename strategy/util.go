package strategy

import (
	"github.com/rs/zerolog/log"

	"ringwars/move"
	"ringwars/ring"
)

// stripToGarrison leaves one resource on every mine node and returns the rest
// to the budget. A single resource is enough to keep the node's bonus.
func stripToGarrison(kind Kind, r *ring.Ring, acc *move.Accumulator) {
	for _, n := range r.Owned(ring.Mine) {
		if n.Count <= 1 {
			continue
		}
		surplus := n.Count - 1
		if err := r.Withdraw(n.ID, surplus); err != nil {
			log.Warn().Err(err).Msgf("%s: could not strip node %d", kind, n.ID)
			continue
		}
		acc.TakeBack(n.ID, surplus)
	}
	log.Debug().Msgf("%s: %d available after stripping", kind, r.Available())
}

// evacuate withdraws everything from a mine node and records it as given up,
// so the next round does not mistake it for a capture. It returns the amount
// withdrawn.
func evacuate(kind Kind, env *Env, r *ring.Ring, acc *move.Accumulator, id int) int {
	count := r.Node(id).Count
	if count <= 0 {
		return 0
	}
	if err := r.Withdraw(id, count); err != nil {
		log.Warn().Err(err).Msgf("%s: could not evacuate node %d", kind, id)
		return 0
	}
	acc.TakeBack(id, count)
	env.Memory.RecordAbandoned(id)
	return count
}

// evacuateAll empties every mine node. No strategy plays it on its own: each
// one keeps at least the garrisons, and a ring without a mine node is judged a
// lost game.
func evacuateAll(kind Kind, env *Env, r *ring.Ring, acc *move.Accumulator) int {
	total := 0
	for _, n := range r.Owned(ring.Mine) {
		total += evacuate(kind, env, r, acc, n.ID)
	}
	return total
}

// topUpLeftover spends whatever is still available: first on uncontrolled
// nodes, then on the weakest mine nodes until they are full.
func topUpLeftover(kind Kind, env *Env, r *ring.Ring, acc *move.Accumulator) {
	if r.Available() <= 0 {
		return
	}
	log.Debug().Msgf("%s: topping up %d leftover resources", kind, r.Available())
	Extend(Expansion, env, r, acc, 1)
	if r.Full(ring.Mine) {
		log.Debug().Msgf("every mine node is full, %d left unspent", r.Available())
		return
	}

	skip := map[int]bool{}
	for r.Available() > 0 {
		var open []ring.Node
		for _, n := range r.Owned(ring.Mine) {
			if n.Count < r.MaxPerNode() && !skip[n.ID] {
				open = append(open, n)
			}
		}
		weakest, ok := r.MinOf(open)
		if !ok {
			return
		}
		if reinforce(kind, r, acc, weakest.ID, r.Available()) == 0 {
			skip[weakest.ID] = true
		}
	}
}

// reinforce places up to amount on node id and returns what actually landed.
// Rejections are logged and count as nothing placed.
func reinforce(kind Kind, r *ring.Ring, acc *move.Accumulator, id, amount int) int {
	p, err := r.Reinforce(id, amount)
	if err != nil {
		log.Warn().Err(err).Msgf("%s: reinforcing node %d rejected", kind, id)
		return 0
	}
	if p.Outcome == ring.Capped {
		log.Debug().Msgf("%s: node %d capped, %d of %d placed", kind, id, p.Applied, p.Requested)
	}
	acc.Place(id, p.Applied)
	return p.Applied
}

// spread divides budget evenly over nodes. The remainder goes one unit each
// to the first nodes in order, and whatever a full node could not take is
// offered again to the others. It returns the amount placed.
func spread(kind Kind, r *ring.Ring, acc *move.Accumulator, nodes []ring.Node, budget int) int {
	spent := 0
	for budget-spent > 0 {
		var open []ring.Node
		for _, n := range nodes {
			current := r.Node(n.ID)
			if current.Count < r.MaxPerNode() && (current.Owner == ring.Mine || current.Owner == ring.Uncontrolled) {
				open = append(open, current)
			}
		}
		if len(open) == 0 {
			break
		}
		share := min(budget-spent, r.Available())
		per, extra := share/len(open), share%len(open)
		placed := 0
		for i, n := range open {
			amount := per
			if i < extra {
				amount++
			}
			if amount == 0 {
				break
			}
			placed += reinforce(kind, r, acc, n.ID, amount)
		}
		if placed == 0 {
			break
		}
		spent += placed
	}
	return spent
}

// alternate orders nodes first, last, second, second to last and so on, which
// favours both ends of a run equally.
func alternate(nodes []ring.Node) []ring.Node {
	ordered := make([]ring.Node, 0, len(nodes))
	for lo, hi := 0, len(nodes)-1; lo <= hi; lo, hi = lo+1, hi-1 {
		ordered = append(ordered, nodes[lo])
		if lo != hi {
			ordered = append(ordered, nodes[hi])
		}
	}
	return ordered
}
