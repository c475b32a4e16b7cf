package ring

// Wrap maps any index onto the ring, so that neither negative offsets nor
// offsets past the last node fall off the board.
func (r *Ring) Wrap(id int) int {
	n := len(r.nodes)
	return ((id % n) + n) % n
}

// Forward returns the id k steps after id.
func (r *Ring) Forward(id, k int) int {
	return r.Wrap(id + k)
}

// Backward returns the id k steps before id.
func (r *Ring) Backward(id, k int) int {
	return r.Wrap(id - k)
}

// Distance is the number of steps between two nodes along the shorter arc.
func (r *Ring) Distance(a, b int) int {
	d := r.Wrap(a - b)
	return min(d, len(r.nodes)-d)
}

// Owned returns copies of the nodes with the given ownership in id order.
func (r *Ring) Owned(owner Ownership) []Node {
	var nodes []Node
	for _, n := range r.nodes {
		if n.Owner == owner {
			nodes = append(nodes, n)
		}
	}
	return nodes
}

// Count returns how many nodes have the given ownership.
func (r *Ring) Count(owner Ownership) int {
	count := 0
	for _, n := range r.nodes {
		if n.Owner == owner {
			count++
		}
	}
	return count
}

// Total sums the resources on the nodes with the given ownership.
func (r *Ring) Total(owner Ownership) int {
	total := 0
	for _, n := range r.nodes {
		if n.Owner == owner {
			total += n.Count
		}
	}
	return total
}

// Reclaimable is what stripping every mine node down to one resource would
// return to the budget.
func (r *Ring) Reclaimable() int {
	total := 0
	for _, n := range r.nodes {
		if n.Owner == Mine && n.Count > 1 {
			total += n.Count - 1
		}
	}
	return total
}

func (r *Ring) OpponentVisible() bool {
	return r.Count(Theirs) > 0
}

// VisibleShare is the fraction of the ring this agent can see.
func (r *Ring) VisibleShare() float64 {
	return float64(len(r.nodes)-r.Count(Unknown)) / float64(len(r.nodes))
}

// Full reports whether every node with the given ownership is at the cap.
func (r *Ring) Full(owner Ownership) bool {
	for _, n := range r.nodes {
		if n.Owner == owner && n.Count < r.maxPerNode {
			return false
		}
	}
	return true
}

// MinOwned returns the weakest node of an ownership class.
func (r *Ring) MinOwned(owner Ownership) (Node, bool) {
	return r.MinOf(r.Owned(owner))
}

// MaxOwned returns the strongest node of an ownership class.
func (r *Ring) MaxOwned(owner Ownership) (Node, bool) {
	return r.MaxOf(r.Owned(owner))
}

// MinOf returns the node with the fewest resources. Counts are read from the
// ring, not from the possibly stale copies passed in. Ties are broken by the
// ring's Picker.
func (r *Ring) MinOf(nodes []Node) (Node, bool) {
	return r.extreme(nodes, func(a, b int) bool { return a < b })
}

// MaxOf returns the node with the most resources, ties broken by the Picker.
func (r *Ring) MaxOf(nodes []Node) (Node, bool) {
	return r.extreme(nodes, func(a, b int) bool { return a > b })
}

func (r *Ring) extreme(nodes []Node, better func(a, b int) bool) (Node, bool) {
	var best []Node
	for _, n := range nodes {
		current := r.Node(n.ID)
		switch {
		case len(best) == 0 || better(current.Count, best[0].Count):
			best = append(best[:0], current)
		case current.Count == best[0].Count:
			best = append(best, current)
		}
	}
	if len(best) == 0 {
		return Node{}, false
	}
	if len(best) == 1 {
		return best[0], true
	}
	return best[r.picker.Intn(len(best))], true
}

// Pick returns one of the nodes uniformly at random.
func (r *Ring) Pick(nodes []Node) (Node, bool) {
	if len(nodes) == 0 {
		return Node{}, false
	}
	return r.Node(nodes[r.picker.Intn(len(nodes))].ID), true
}

// freeRun reports whether the k nodes after (step 1) or before (step -1) id
// are all uncontrolled.
func (r *Ring) freeRun(id, k, step int) bool {
	for i := 1; i <= k; i++ {
		if r.nodes[r.Wrap(id+step*i)].Owner != Uncontrolled {
			return false
		}
	}
	return true
}

// FreeOnBothSides returns the opponent nodes followed by at least forward
// uncontrolled nodes and preceded by at least backward uncontrolled nodes.
// These are the targets for a triple capture edge battle.
func (r *Ring) FreeOnBothSides(forward, backward int) []Node {
	var nodes []Node
	for _, n := range r.nodes {
		if n.Owner == Theirs && r.freeRun(n.ID, forward, 1) && r.freeRun(n.ID, backward, -1) {
			nodes = append(nodes, n)
		}
	}
	return nodes
}

// FreeOnOneSide returns the opponent nodes with k uncontrolled nodes on
// exactly one side.
func (r *Ring) FreeOnOneSide(k int) []Node {
	var nodes []Node
	for _, n := range r.nodes {
		if n.Owner == Theirs && r.freeRun(n.ID, k, 1) != r.freeRun(n.ID, k, -1) {
			nodes = append(nodes, n)
		}
	}
	return nodes
}

// FreeAhead reports whether the k nodes after id are uncontrolled.
func (r *Ring) FreeAhead(id, k int) bool {
	return r.freeRun(id, k, 1)
}

// NextToOpponent reports whether either direct neighbour of id is held by
// the opponent.
func (r *Ring) NextToOpponent(id int) bool {
	return r.Node(id+1).Owner == Theirs || r.Node(id-1).Owner == Theirs
}

// OpponentDistance returns the distance from id to the closest opponent
// node, or false if the opponent holds no visible node.
func (r *Ring) OpponentDistance(id int) (int, bool) {
	best, found := 0, false
	for _, n := range r.nodes {
		if n.Owner != Theirs {
			continue
		}
		d := r.Distance(id, n.ID)
		if !found || d < best {
			best, found = d, true
		}
	}
	return best, found
}

// VisibleToOpponent reports whether node id lies within radius of an
// opponent node.
func (r *Ring) VisibleToOpponent(id, radius int) bool {
	d, ok := r.OpponentDistance(id)
	return ok && d <= radius
}

// Exposed returns the mine nodes the opponent can see.
func (r *Ring) Exposed(radius int) []Node {
	var nodes []Node
	for _, n := range r.nodes {
		if n.Owner == Mine && r.VisibleToOpponent(n.ID, radius) {
			nodes = append(nodes, n)
		}
	}
	return nodes
}

// Hidden returns the mine nodes the opponent cannot see.
func (r *Ring) Hidden(radius int) []Node {
	var nodes []Node
	for _, n := range r.nodes {
		if n.Owner == Mine && !r.VisibleToOpponent(n.ID, radius) {
			nodes = append(nodes, n)
		}
	}
	return nodes
}

// EstimateRadius guesses the visibility radius from what this agent sees:
// one less than the shortest distance from an invisible node to a mine node.
// It reports false when nothing is invisible or nothing is mine.
func (r *Ring) EstimateRadius() (int, bool) {
	best, found := 0, false
	for _, u := range r.nodes {
		if u.Owner != Unknown {
			continue
		}
		for _, m := range r.nodes {
			if m.Owner != Mine {
				continue
			}
			d := r.Distance(u.ID, m.ID)
			if !found || d < best {
				best, found = d, true
			}
		}
	}
	if !found {
		return 0, false
	}
	return best - 1, true
}
