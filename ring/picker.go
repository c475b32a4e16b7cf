package ring

import "golang.org/x/exp/rand"

// Picker chooses uniformly among n equally good candidates.
type Picker interface {
	Intn(n int) int
}

// NewPicker returns a seeded Picker, so a whole round can be replayed.
func NewPicker(seed uint64) Picker {
	return rand.New(rand.NewSource(seed))
}
