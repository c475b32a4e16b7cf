package notes

import (
	"fmt"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

// Tier is a coarse estimate of one of the opponent's traits.
type Tier int

const (
	Unknown Tier = iota
	Low
	Mid
	High
)

func (t Tier) String() string {
	switch t {
	case Low:
		return "low"
	case Mid:
		return "mid"
	case High:
		return "high"
	default:
		return "unknown"
	}
}

func ParseTier(s string) (Tier, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "unknown":
		return Unknown, nil
	case "low":
		return Low, nil
	case "mid":
		return Mid, nil
	case "high":
		return High, nil
	}
	return Unknown, fmt.Errorf("unknown tier %q", s)
}

func (t Tier) MarshalYAML() (interface{}, error) {
	return t.String(), nil
}

func (t *Tier) UnmarshalYAML(value *yaml.Node) error {
	parsed, err := ParseTier(value.Value)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Slot indexes the strategy ratio vector.
type Slot int

const (
	Expansion Slot = iota
	Consolidation
	AttackMax
	AttackMin
	Defensive
)

var slotNames = [...]string{"expansion", "consolidation", "attack-max", "attack-min", "defensive"}

func (s Slot) String() string {
	if s < 0 || int(s) >= len(slotNames) {
		return fmt.Sprintf("slot(%d)", int(s))
	}
	return slotNames[s]
}

// donors lists, for each slot, the slots its increase is taken from, in order.
var donors = [...][4]Slot{
	Expansion:     {Defensive, Consolidation, AttackMax, AttackMin},
	Consolidation: {AttackMax, AttackMin, Expansion, Defensive},
	AttackMax:     {Defensive, Consolidation, Expansion, AttackMin},
	AttackMin:     {Defensive, Consolidation, Expansion, AttackMax},
	Defensive:     {AttackMax, AttackMin, Expansion, Consolidation},
}

// Ratios is the share of the round budget each basic strategy receives in the
// mixed strategy.
type Ratios [5]float64

func (r Ratios) Sum() float64 {
	sum := 0.0
	for _, v := range r {
		sum += v
	}
	return sum
}

// Increase moves up to amount onto slot, draining the donor slots in their
// fixed order. No donor goes below zero, so the total never changes. It
// returns how much was actually moved.
func (r *Ratios) Increase(slot Slot, amount float64) float64 {
	moved := 0.0
	for _, donor := range donors[slot] {
		if moved >= amount {
			break
		}
		take := min(amount-moved, r[donor])
		if take <= 0 {
			continue
		}
		r[donor] -= take
		moved += take
	}
	r[slot] += moved
	return moved
}

// Unset marks a blocked attack ratio that has no value yet.
const Unset = -1.0

// Memory is everything the agent carries from one round to the next.
type Memory struct {
	Round                    int     `yaml:"round"`
	Aggressiveness           Tier    `yaml:"aggressiveness"`
	Defensiveness            Tier    `yaml:"defensiveness"`
	OpponentAttacksTotal     int     `yaml:"opponent_attacks_total"`
	OpponentAttacksLastRound int     `yaml:"opponent_attacks_last_round"`
	VisibilityRadius         int     `yaml:"visibility_radius"`
	MyAttacks                []int   `yaml:"my_attacks_this_round,flow"`
	Abandoned                []int   `yaml:"abandoned_this_round,flow"`
	BlockedRatioTotal        float64 `yaml:"blocked_attack_ratio_total"`
	BlockedRatioLastRound    float64 `yaml:"blocked_attack_ratio_last_round"`
	BlockedRounds            int     `yaml:"blocked_rounds"`
	AttackBuffer             float64 `yaml:"attack_buffer"`
	Ratios                   Ratios  `yaml:"strategy_ratios,flow"`
	AnalysisInitialized      bool    `yaml:"analysis_initialized"`
}

// Default returns the memory of an agent that knows nothing about its
// opponent yet.
func Default(round, radius int) *Memory {
	return &Memory{
		Round:                 round,
		VisibilityRadius:      radius,
		BlockedRatioTotal:     Unset,
		BlockedRatioLastRound: Unset,
		AttackBuffer:          1.0,
	}
}

// Clone returns a deep copy.
func (m *Memory) Clone() *Memory {
	c := *m
	c.MyAttacks = slices.Clone(m.MyAttacks)
	c.Abandoned = slices.Clone(m.Abandoned)
	return &c
}

// Initialize seeds the ratio vector and turns on the mixed strategy.
func (m *Memory) Initialize(seed []float64) {
	m.Ratios = Ratios{}
	copy(m.Ratios[:], seed)
	m.AnalysisInitialized = true
}

// RecordAttack notes that this agent attacked node id this round.
func (m *Memory) RecordAttack(id int) {
	if !slices.Contains(m.MyAttacks, id) {
		m.MyAttacks = append(m.MyAttacks, id)
	}
}

// RecordAbandoned notes that this agent gave up node id voluntarily.
func (m *Memory) RecordAbandoned(id int) {
	if !slices.Contains(m.Abandoned, id) {
		m.Abandoned = append(m.Abandoned, id)
	}
}

func (m *Memory) WasAbandoned(id int) bool {
	return slices.Contains(m.Abandoned, id)
}

func (m *Memory) HasBlockedTotal() bool {
	return m.BlockedRatioTotal >= 0
}

func (m *Memory) HasBlockedLastRound() bool {
	return m.BlockedRatioLastRound >= 0
}

// ClearRound forgets the attack and abandonment logs of the previous round.
func (m *Memory) ClearRound() {
	m.MyAttacks = nil
	m.Abandoned = nil
}
