package strategy

import (
	"math"
	"slices"

	"github.com/rs/zerolog/log"

	"ringwars/move"
	"ringwars/ring"
)

// attack builds the AttackMax or AttackMin strategy. Edge battles come first
// since they win nodes without losing resources: a triple capture on an
// opponent node with free nodes on both sides, then a capture from one side.
// Direct attacks, which win a single node at the highest price, come last.
func attack(kind Kind) run {
	return func(env *Env, r *ring.Ring, acc *move.Accumulator, budget int) {
		a := attacker{kind: kind, env: env, r: r, acc: acc, budget: min(budget, r.Available()), done: map[int]bool{}}
		if a.budget <= 0 {
			return
		}
		depth := env.Tuning.EdgeBattleDepth
		a.each(r.FreeOnBothSides(depth, depth), a.tripleCapture)
		a.each(r.FreeOnOneSide(depth), a.sideCapture)
		a.each(r.Owned(ring.Theirs), a.direct)
	}
}

type attacker struct {
	kind   Kind
	env    *Env
	r      *ring.Ring
	acc    *move.Accumulator
	budget int
	done   map[int]bool // Opponent nodes already attacked or dropped this round
}

// each offers the candidates to try, strongest or weakest first, until none
// is left. A candidate is tried once whatever the outcome.
func (a *attacker) each(candidates []ring.Node, try func(target ring.Node)) {
	candidates = slices.DeleteFunc(candidates, func(n ring.Node) bool { return a.done[n.ID] })
	for len(candidates) > 0 && a.budget > 0 {
		target, ok := a.choose(candidates)
		if !ok {
			return
		}
		candidates = slices.DeleteFunc(candidates, func(n ring.Node) bool { return n.ID == target.ID })
		if target.Owner != ring.Theirs {
			continue
		}
		try(target)
	}
}

func (a *attacker) choose(candidates []ring.Node) (ring.Node, bool) {
	if a.kind == AttackMax {
		return a.r.MaxOf(candidates)
	}
	return a.r.MinOf(candidates)
}

// edgeCost is what occupying the free side of an opponent node takes.
func (a *attacker) edgeCost(target ring.Node) int {
	return int(math.Ceil(float64(target.Count) * a.env.Memory.AttackBuffer * a.env.Tuning.EdgeBattleFactor))
}

func (a *attacker) tripleCapture(target ring.Node) {
	cost := max(a.edgeCost(target), 2)
	if cost > a.budget {
		return
	}
	forward := cost / 2
	spent := reinforce(a.kind, a.r, a.acc, a.r.Forward(target.ID, 1), forward)
	spent += reinforce(a.kind, a.r, a.acc, a.r.Backward(target.ID, 1), cost-forward)
	a.settle(target, spent)
}

func (a *attacker) sideCapture(target ring.Node) {
	cost := max(a.edgeCost(target), 1)
	if cost > a.budget {
		return
	}
	side := a.r.Backward(target.ID, 1)
	if a.r.FreeAhead(target.ID, a.env.Tuning.EdgeBattleDepth) {
		side = a.r.Forward(target.ID, 1)
	}
	a.settle(target, reinforce(a.kind, a.r, a.acc, side, cost))
}

func (a *attacker) direct(target ring.Node) {
	cost := int(float64(target.Count)*a.env.Memory.AttackBuffer) + 1
	if cost > a.budget {
		return
	}
	p, err := a.r.Attack(target.ID, cost)
	if err != nil {
		log.Warn().Err(err).Msgf("%s: dropping node %d", a.kind, target.ID)
		a.done[target.ID] = true
		return
	}
	a.acc.Place(target.ID, p.Applied)
	a.settle(target, p.Applied)
}

// settle charges the budget with what was actually spent on target. Capped
// placements cost only what landed.
func (a *attacker) settle(target ring.Node, spent int) {
	a.done[target.ID] = true
	if spent <= 0 {
		return
	}
	a.budget -= spent
	a.env.Memory.RecordAttack(target.ID)
	log.Info().Msgf("%s: node %d attacked with %d, %d left", a.kind, target.ID, spent, a.budget)
}
