package ring

import (
	"errors"
	"fmt"
)

var (
	ErrIllegalTarget         = errors.New("illegal target")
	ErrIllegalOwnership      = errors.New("illegal ownership")
	ErrInsufficientResources = errors.New("insufficient resources")
	ErrInvalidAmount         = errors.New("invalid amount")
)

// Outcome classifies the result of a placement on the ring.
type Outcome int

const (
	Placed   Outcome = iota // Everything requested was applied
	Capped                  // Only part of the request fit under the per node cap
	Rejected                // Nothing was applied
)

func (o Outcome) String() string {
	switch o {
	case Placed:
		return "placed"
	case Capped:
		return "capped"
	default:
		return "rejected"
	}
}

// Placement reports how much of a reinforce or attack request actually landed.
type Placement struct {
	Requested int
	Applied   int
	Outcome   Outcome
}

// Shortfall is the part of the request that was not applied and can be
// credited back to the caller's budget.
func (p Placement) Shortfall() int {
	return p.Requested - p.Applied
}

type Option func(r *Ring)

// WithPicker sets the source used to break ties between equal nodes.
func WithPicker(p Picker) Option {
	return func(r *Ring) {
		if p != nil {
			r.picker = p
		}
	}
}

// Ring is the circular board for a single round. It is mutated in place by
// the strategy that runs during the round.
type Ring struct {
	nodes        []Node
	maxPerNode   int
	available    int
	maxThisRound int
	picker       Picker
}

// New builds a ring from nodes ordered by id. The round maximum is fixed at
// construction: new resources plus everything already on mine nodes.
func New(nodes []Node, maxPerNode, available int, options ...Option) *Ring {
	if len(nodes) == 0 {
		panic("ring needs at least one node")
	}
	r := &Ring{
		nodes:      make([]Node, len(nodes)),
		maxPerNode: maxPerNode,
		available:  available,
		picker:     NewPicker(1),
	}
	copy(r.nodes, nodes)
	for i := range r.nodes {
		r.nodes[i].ID = i
	}
	for _, option := range options {
		option(r)
	}
	r.maxThisRound = available + r.Total(Mine)
	return r
}

// Clone returns an independent copy sharing only the picker.
func (r *Ring) Clone() *Ring {
	nodes := make([]Node, len(r.nodes))
	copy(nodes, r.nodes)
	return &Ring{
		nodes:        nodes,
		maxPerNode:   r.maxPerNode,
		available:    r.available,
		maxThisRound: r.maxThisRound,
		picker:       r.picker,
	}
}

func (r *Ring) Len() int {
	return len(r.nodes)
}

func (r *Ring) Available() int {
	return r.available
}

func (r *Ring) MaxPerNode() int {
	return r.maxPerNode
}

func (r *Ring) MaxThisRound() int {
	return r.maxThisRound
}

// Node returns a copy of the node with the given id. The id wraps around the
// ring, so -1 is the last node.
func (r *Ring) Node(id int) Node {
	return r.nodes[r.Wrap(id)]
}

// Nodes returns copies of all nodes in id order.
func (r *Ring) Nodes() []Node {
	nodes := make([]Node, len(r.nodes))
	copy(nodes, r.nodes)
	return nodes
}

func (r *Ring) lookup(id int) (*Node, error) {
	if id < 0 || id >= len(r.nodes) {
		return nil, fmt.Errorf("node %d is not on a ring of %d nodes: %w", id, len(r.nodes), ErrIllegalTarget)
	}
	return &r.nodes[id], nil
}

// Reinforce places resources on an uncontrolled or mine node. Anything above
// the per node cap is not applied and reported as Capped.
func (r *Ring) Reinforce(id, amount int) (Placement, error) {
	rejected := Placement{Requested: amount, Outcome: Rejected}
	if amount <= 0 {
		return rejected, fmt.Errorf("reinforce node %d with %d: %w", id, amount, ErrInvalidAmount)
	}
	node, err := r.lookup(id)
	if err != nil {
		return rejected, err
	}
	switch node.Owner {
	case Theirs:
		return rejected, fmt.Errorf("node %d belongs to the opponent, attack it instead: %w", id, ErrIllegalTarget)
	case Unknown:
		return rejected, fmt.Errorf("node %d is invisible: %w", id, ErrIllegalTarget)
	}

	applied := min(amount, r.maxPerNode-node.Count)
	if applied > r.available {
		return rejected, fmt.Errorf("reinforce node %d with %d, %d available: %w", id, applied, r.available, ErrInsufficientResources)
	}
	if applied > 0 {
		node.Count += applied
		node.Owner = Mine
		r.available -= applied
	}
	return placement(amount, applied), nil
}

// Attack places resources on an opponent node. The attacker's excess over the
// defender's force becomes the new garrison and the node flips to mine.
func (r *Ring) Attack(id, amount int) (Placement, error) {
	rejected := Placement{Requested: amount, Outcome: Rejected}
	node, err := r.lookup(id)
	if err != nil {
		return rejected, err
	}
	if node.Owner != Theirs {
		return rejected, fmt.Errorf("node %d is %s, reinforce it instead: %w", id, node.Owner, ErrIllegalTarget)
	}
	if amount <= node.Count {
		return rejected, fmt.Errorf("insufficient attack force %d against %d on node %d: %w", amount, node.Count, id, ErrIllegalTarget)
	}

	applied := min(amount, r.maxPerNode+node.Count)
	if applied > r.available {
		return rejected, fmt.Errorf("attack node %d with %d, %d available: %w", id, applied, r.available, ErrInsufficientResources)
	}
	node.Count = applied - node.Count
	node.Owner = Mine
	r.available -= applied
	return placement(amount, applied), nil
}

// Withdraw removes resources from a mine node and returns them to the
// budget. A node left empty becomes uncontrolled.
func (r *Ring) Withdraw(id, amount int) error {
	if amount <= 0 {
		return fmt.Errorf("withdraw %d from node %d: %w", amount, id, ErrInvalidAmount)
	}
	node, err := r.lookup(id)
	if err != nil {
		return err
	}
	if node.Owner != Mine {
		return fmt.Errorf("node %d is %s: %w", id, node.Owner, ErrIllegalOwnership)
	}
	if node.Count-amount < 0 {
		return fmt.Errorf("withdraw %d from node %d holding %d: %w", amount, id, node.Count, ErrInsufficientResources)
	}
	node.Count -= amount
	if node.Count == 0 {
		node.Owner = Uncontrolled
	}
	r.available += amount
	return nil
}

func placement(requested, applied int) Placement {
	if applied < requested {
		return Placement{Requested: requested, Applied: applied, Outcome: Capped}
	}
	return Placement{Requested: requested, Applied: applied, Outcome: Placed}
}
