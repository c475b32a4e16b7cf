package analyzer

import (
	"github.com/rs/zerolog/log"

	"ringwars/meta"
	"ringwars/notes"
	"ringwars/ring"
)

// Reflect updates the opponent model with what happened since the previous
// round. previousMine holds the ids this agent owned right after its previous
// move; without them, or on the first round, there is nothing to compare and
// the memory is left as it is.
func Reflect(previousMine []int, current *ring.Ring, m *notes.Memory, t meta.Tuning) {
	if m.Round <= 1 || previousMine == nil || current == nil {
		return
	}

	lost := 0
	for _, id := range previousMine {
		if current.Node(id).Owner != ring.Mine && !m.WasAbandoned(id) {
			lost++
		}
	}
	m.OpponentAttacksLastRound = lost
	m.OpponentAttacksTotal += lost

	m.BlockedRatioLastRound = blockedRatio(m.MyAttacks, current)
	if m.HasBlockedLastRound() {
		if m.HasBlockedTotal() {
			m.BlockedRatioTotal = (m.BlockedRatioTotal*float64(m.BlockedRounds) + m.BlockedRatioLastRound) / float64(m.BlockedRounds+1)
		} else {
			m.BlockedRatioTotal = m.BlockedRatioLastRound
		}
		m.BlockedRounds++
	}
	m.ClearRound()

	if m.BlockedRatioLastRound > t.BlockedThreshold {
		m.AttackBuffer += t.BlockedBufferStep
	}

	rateAggressiveness(len(previousMine), m, t)
	rateDefensiveness(m, t)

	log.Info().Msgf("round %d: opponent took %d nodes, blocked %.2f of my attacks, aggressiveness %s, defensiveness %s, buffer %.2f",
		m.Round, lost, m.BlockedRatioLastRound, m.Aggressiveness, m.Defensiveness, m.AttackBuffer)
}

// blockedRatio is the share of attacked nodes that are not mine now, or
// notes.Unset if there were no attacks.
func blockedRatio(attacked []int, current *ring.Ring) float64 {
	if len(attacked) == 0 {
		return notes.Unset
	}
	blocked := 0
	for _, id := range attacked {
		if current.Node(id).Owner != ring.Mine {
			blocked++
		}
	}
	return float64(blocked) / float64(len(attacked))
}

// rateAggressiveness places the opponent's attacks of the last round relative
// to the number of nodes this agent held. Anything outside the low and mid
// bands, a quiet round included, rates as high. Each tier climbed moves weight
// to consolidation.
func rateAggressiveness(held int, m *notes.Memory, t meta.Tuning) {
	attacks := float64(m.OpponentAttacksLastRound)
	n := float64(held)
	var tier notes.Tier
	switch {
	case attacks > 0 && attacks <= n*t.LowAggression:
		tier = notes.Low
	case attacks > n*t.LowAggression && attacks < n*t.MidAggression:
		tier = notes.Mid
	default:
		tier = notes.High
	}
	if tier > m.Aggressiveness {
		nudge := t.RatioNudge * float64(tier-m.Aggressiveness)
		moved := m.Ratios.Increase(notes.Consolidation, nudge)
		log.Debug().Msgf("aggressiveness %s -> %s, consolidation +%.2f", m.Aggressiveness, tier, moved)
	}
	m.Aggressiveness = tier
}

// rateDefensiveness compares the blocked share of the last round against the
// running mean that already includes it. More blocking than usual means
// attacking with a larger buffer; less blocking lowers it again, but by a
// smaller step.
func rateDefensiveness(m *notes.Memory, t meta.Tuning) {
	if !m.HasBlockedLastRound() || !m.HasBlockedTotal() {
		return
	}
	last, average := m.BlockedRatioLastRound, m.BlockedRatioTotal
	switch {
	case last > average*t.DefensiveBandHigh:
		m.Defensiveness = min(m.Defensiveness+1, notes.High)
		m.AttackBuffer += t.BufferRaise
	case last < average*t.DefensiveBandLow:
		m.Defensiveness = max(m.Defensiveness-1, notes.Low)
		m.AttackBuffer = max(m.AttackBuffer-t.BufferLower, 1)
	}
}
