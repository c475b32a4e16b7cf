package analyzer

import (
	"testing"

	"github.com/stretchr/testify/require"

	"ringwars/meta"
	"ringwars/notes"
	"ringwars/ring"
	"ringwars/strategy"
)

type firstPicker struct{}

func (firstPicker) Intn(int) int { return 0 }

func build(codes string, counts []int, available int) *ring.Ring {
	nodes := make([]ring.Node, len(codes))
	for i, c := range codes {
		nodes[i] = ring.Node{Owner: ring.ParseOwnership(string(c)), Count: counts[i]}
	}
	return ring.New(nodes, 20, available, ring.WithPicker(firstPicker{}))
}

func ones(n int) []int {
	counts := make([]int, n)
	for i := range counts {
		counts[i] = 1
	}
	return counts
}

func span(from, to int) []int {
	var ids []int
	for id := from; id < to; id++ {
		ids = append(ids, id)
	}
	return ids
}

func TestReflectOpponentAttacks(t *testing.T) {
	t.Run("one loss out of forty is low aggression", func(t *testing.T) {
		codes := []byte{}
		for i := 0; i < 48; i++ {
			codes = append(codes, 'Y')
		}
		codes[5] = 'T'
		codes[40], codes[41] = 'N', 'N'
		current := build(string(codes), ones(48), 10)
		m := notes.Default(4, 2)
		m.Initialize([]float64{0, 0, 0, 0, 1})

		Reflect(span(0, 40), current, m, meta.Defaults())

		require.Equal(t, 1, m.OpponentAttacksLastRound)
		require.Equal(t, 1, m.OpponentAttacksTotal)
		require.Equal(t, notes.Low, m.Aggressiveness, "1 <= 40/8")
		require.InDelta(t, 0.05, m.Ratios[notes.Consolidation], 1e-9)
		require.InDelta(t, 1, m.Ratios.Sum(), 1e-9)
	})

	t.Run("abandoned nodes are not losses", func(t *testing.T) {
		current := build("YNTY", []int{1, 0, 3, 1}, 10)
		m := notes.Default(2, 2)
		m.RecordAbandoned(1)

		Reflect([]int{0, 1, 3}, current, m, meta.Defaults())

		require.Zero(t, m.OpponentAttacksLastRound)
		require.Equal(t, notes.High, m.Aggressiveness, "No losses is outside the low and mid bands")
		require.Empty(t, m.Abandoned, "The logs should be cleared for the new round")
	})

	t.Run("heavy losses climb straight to high", func(t *testing.T) {
		current := build("TTTYNNNN", []int{1, 1, 1, 1, 0, 0, 0, 0}, 10)
		m := notes.Default(3, 2)
		m.Initialize([]float64{0, 0, 0.1, 0, 0.9})
		m.OpponentAttacksTotal = 2

		Reflect([]int{0, 1, 2, 3}, current, m, meta.Defaults())

		require.Equal(t, 3, m.OpponentAttacksLastRound)
		require.Equal(t, 5, m.OpponentAttacksTotal)
		require.Equal(t, notes.High, m.Aggressiveness)
		require.InDelta(t, 0.15, m.Ratios[notes.Consolidation], 1e-9, "Three tiers climbed")
		require.InDelta(t, 0, m.Ratios[notes.AttackMax], 1e-9, "AttackMax gives first")
		require.InDelta(t, 0.85, m.Ratios[notes.Defensive], 1e-9)
	})

	t.Run("mid tier from low", func(t *testing.T) {
		current := build("TYYYYYNN", []int{1, 1, 1, 1, 1, 1, 0, 0}, 10)
		m := notes.Default(3, 2)
		m.Initialize([]float64{0, 0, 0, 0, 1})
		m.Aggressiveness = notes.Low

		Reflect(span(0, 6), current, m, meta.Defaults())

		require.Equal(t, notes.Mid, m.Aggressiveness, "1 of 6 is above 6/8 and below 6/3")
		require.InDelta(t, 0.05, m.Ratios[notes.Consolidation], 1e-9)
	})

	t.Run("quiet round rates high", func(t *testing.T) {
		current := build("YYYYNNNN", []int{1, 1, 1, 1, 0, 0, 0, 0}, 10)
		m := notes.Default(3, 2)
		m.Initialize([]float64{0, 0, 0, 0, 1})

		Reflect(span(0, 4), current, m, meta.Defaults())

		require.Zero(t, m.OpponentAttacksLastRound)
		require.Equal(t, notes.High, m.Aggressiveness)
		require.InDelta(t, 0.15, m.Ratios[notes.Consolidation], 1e-9, "Three tiers climbed from unknown")
		require.InDelta(t, 0.85, m.Ratios[notes.Defensive], 1e-9)
	})

	t.Run("staying high moves nothing", func(t *testing.T) {
		current := build("YYYYNNNN", []int{1, 1, 1, 1, 0, 0, 0, 0}, 10)
		m := notes.Default(4, 2)
		m.Initialize([]float64{0, 0.15, 0, 0, 0.85})
		m.Aggressiveness = notes.High

		Reflect(span(0, 4), current, m, meta.Defaults())

		require.Equal(t, notes.High, m.Aggressiveness)
		require.Equal(t, notes.Ratios{0, 0.15, 0, 0, 0.85}, m.Ratios)
	})

	t.Run("first round and missing prediction are skipped", func(t *testing.T) {
		current := build("TN", []int{1, 0}, 10)

		first := notes.Default(1, 2)
		Reflect([]int{0}, current, first, meta.Defaults())
		require.Equal(t, notes.Default(1, 2), first)

		missing := notes.Default(5, 2)
		Reflect(nil, current, missing, meta.Defaults())
		require.Equal(t, notes.Default(5, 2), missing)
	})
}

func TestReflectBlockedAttacks(t *testing.T) {
	t.Run("no attacks keeps the ratio unset", func(t *testing.T) {
		current := build("YNTN", []int{1, 0, 2, 0}, 10)
		m := notes.Default(2, 2)

		Reflect([]int{0}, current, m, meta.Defaults())

		require.Equal(t, notes.Unset, m.BlockedRatioLastRound)
		require.Equal(t, notes.Unset, m.BlockedRatioTotal)
		require.Zero(t, m.BlockedRounds)
	})

	t.Run("fractional ratio raises the buffer", func(t *testing.T) {
		current := build("YYTN", []int{1, 1, 2, 0}, 10)
		m := notes.Default(2, 2)
		m.RecordAttack(1)
		m.RecordAttack(2)

		Reflect([]int{0}, current, m, meta.Defaults())

		require.InDelta(t, 0.5, m.BlockedRatioLastRound, 1e-9, "One of two attacks blocked")
		require.InDelta(t, 0.5, m.BlockedRatioTotal, 1e-9, "The first ratio starts the mean")
		require.Equal(t, 1, m.BlockedRounds)
		require.InDelta(t, 1.1, m.AttackBuffer, 1e-9, "Over 30% blocked")
		require.Empty(t, m.MyAttacks)
		require.Equal(t, notes.Unknown, m.Defensiveness, "No average to compare with yet")
	})

	t.Run("more blocking than usual", func(t *testing.T) {
		current := build("YTTN", []int{1, 1, 2, 0}, 10)
		m := notes.Default(3, 2)
		m.BlockedRatioTotal, m.BlockedRounds = 0.5, 2
		m.RecordAttack(1)
		m.RecordAttack(2)

		Reflect([]int{0}, current, m, meta.Defaults())

		require.InDelta(t, 1, m.BlockedRatioLastRound, 1e-9)
		require.InDelta(t, 2.0/3, m.BlockedRatioTotal, 1e-9, "(0.5 * 2 + 1) / 3")
		require.Equal(t, 3, m.BlockedRounds)
		require.Equal(t, notes.Low, m.Defensiveness)
		require.InDelta(t, 1.2, m.AttackBuffer, 1e-9, "Raised for the threshold and for the tier")
	})

	t.Run("less blocking than usual", func(t *testing.T) {
		current := build("YYYN", []int{1, 1, 1, 0}, 10)
		m := notes.Default(3, 2)
		m.BlockedRatioTotal, m.BlockedRounds = 0.5, 2
		m.Defensiveness = notes.Mid
		m.AttackBuffer = 1.3
		m.RecordAttack(1)

		Reflect([]int{0}, current, m, meta.Defaults())

		require.InDelta(t, 0, m.BlockedRatioLastRound, 1e-9, "No attack was blocked, which differs from no attack at all")
		require.Equal(t, notes.Low, m.Defensiveness)
		require.InDelta(t, 1.25, m.AttackBuffer, 1e-9)
	})

	t.Run("compared against the mean including the last round", func(t *testing.T) {
		current := build("YTYN", []int{1, 2, 1, 0}, 10)
		m := notes.Default(3, 2)
		m.BlockedRatioTotal, m.BlockedRounds = 0.465, 1
		m.RecordAttack(1)
		m.RecordAttack(2)

		Reflect([]int{0}, current, m, meta.Defaults())

		require.InDelta(t, 0.5, m.BlockedRatioLastRound, 1e-9)
		require.InDelta(t, 0.4825, m.BlockedRatioTotal, 1e-9, "(0.465 + 0.5) / 2")
		require.Equal(t, notes.Unknown, m.Defensiveness, "0.5 is within 5% of 0.4825, though not of 0.465")
		require.InDelta(t, 1.1, m.AttackBuffer, 1e-9, "Raised only for the threshold")
	})

	t.Run("buffer never drops below one", func(t *testing.T) {
		current := build("YYYN", []int{1, 1, 1, 0}, 10)
		m := notes.Default(3, 2)
		m.BlockedRatioTotal, m.BlockedRounds = 0.5, 2
		m.Defensiveness = notes.Low
		m.RecordAttack(1)

		Reflect([]int{0}, current, m, meta.Defaults())

		require.Equal(t, notes.Low, m.Defensiveness, "Low is the floor")
		require.Equal(t, 1.0, m.AttackBuffer)
	})
}

func TestSelect(t *testing.T) {
	tuning := meta.Defaults()

	t.Run("no ring", func(t *testing.T) {
		require.Equal(t, strategy.Empty, Select(nil, notes.Default(1, 2), tuning))
	})

	t.Run("no resources", func(t *testing.T) {
		r := build("YNT", []int{1, 0, 1}, 0)

		require.Equal(t, strategy.Empty, Select(r, notes.Default(1, 2), tuning))
	})

	t.Run("opponent out of sight", func(t *testing.T) {
		r := build("YNNU", []int{1, 0, 0, -1}, 5)

		require.Equal(t, strategy.Expansion, Select(r, notes.Default(1, 2), tuning))
	})

	t.Run("small opponent within reach", func(t *testing.T) {
		r := build("YYNT", []int{5, 1, 0, 8}, 5)

		require.Equal(t, strategy.AttackMax, Select(r, notes.Default(1, 2), tuning),
			"5 available and 4 reclaimable exceed 1.1 * 8")
	})

	t.Run("small opponent out of reach", func(t *testing.T) {
		r := build("YYNT", []int{4, 1, 0, 9}, 5)

		require.Equal(t, strategy.Defensive, Select(r, notes.Default(1, 2), tuning),
			"9 is not within reach and more than 1.5 * 5")
	})

	t.Run("mixed once initialized", func(t *testing.T) {
		r := build("YYTTTTTN", []int{5, 5, 1, 1, 1, 1, 1, 0}, 3)
		m := notes.Default(3, 2)
		m.Initialize(tuning.SeedRatios)

		require.Equal(t, strategy.Mixed, Select(r, m, tuning))
	})

	t.Run("fallback initializes the model", func(t *testing.T) {
		r := build("YYTTTTTN", []int{5, 5, 1, 1, 1, 1, 1, 0}, 3)
		m := notes.Default(3, 2)

		require.Equal(t, strategy.FallBack, Select(r, m, tuning))
		require.True(t, m.AnalysisInitialized)
		require.Equal(t, notes.Ratios{0, 0, 0, 0, 1}, m.Ratios, "All weight on defensive")
	})
}
