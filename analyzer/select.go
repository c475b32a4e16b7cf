package analyzer

import (
	"github.com/rs/zerolog/log"

	"ringwars/meta"
	"ringwars/notes"
	"ringwars/ring"
	"ringwars/strategy"
)

// Select picks this round's strategy. Reflexes for clear situations come
// first; otherwise the learned mix is played once the model is initialized.
func Select(r *ring.Ring, m *notes.Memory, t meta.Tuning) strategy.Kind {
	kind := choose(r, m, t)
	log.Info().Msgf("round %d: playing %s", m.Round, kind)
	return kind
}

func choose(r *ring.Ring, m *notes.Memory, t meta.Tuning) strategy.Kind {
	if r == nil || r.Available() == 0 {
		return strategy.Empty
	}
	if !r.OpponentVisible() {
		return strategy.Expansion
	}
	if strongest, ok := r.MaxOwned(ring.Theirs); ok && r.Count(ring.Theirs) < t.OpponentNodeLimit {
		usable := float64(r.Available() + r.Reclaimable())
		if usable > m.AttackBuffer*t.AttackTrigger*float64(strongest.Count) {
			return strategy.AttackMax
		}
	}
	if float64(r.Total(ring.Theirs)) > t.DefensiveTrigger*float64(r.Total(ring.Mine)) {
		return strategy.Defensive
	}
	if m.AnalysisInitialized {
		return strategy.Mixed
	}
	m.Initialize(t.SeedRatios)
	return strategy.FallBack
}
