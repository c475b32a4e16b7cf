package move

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

var ErrOverBudget = errors.New("move exceeds the round budget")

// Entry is one line of the move file: a signed change on one node.
type Entry struct {
	Node  int
	Delta int
}

func (e Entry) String() string {
	return strconv.Itoa(e.Node) + "," + strconv.Itoa(e.Delta)
}

// Accumulator collects the changes a strategy makes during a round. Placements
// and removals on the same node are kept as separate signed entries.
type Accumulator struct {
	entries []Entry
}

func New() *Accumulator {
	return &Accumulator{}
}

// Place records amount resources put on node, merging with an earlier
// placement on the same node.
func (a *Accumulator) Place(node, amount int) {
	if amount <= 0 {
		return
	}
	for i := range a.entries {
		if a.entries[i].Node == node && a.entries[i].Delta > 0 {
			a.entries[i].Delta += amount
			return
		}
	}
	a.entries = append(a.entries, Entry{Node: node, Delta: amount})
}

// TakeBack records amount resources removed from node, merging with an
// earlier removal on the same node.
func (a *Accumulator) TakeBack(node, amount int) {
	if amount <= 0 {
		return
	}
	for i := range a.entries {
		if a.entries[i].Node == node && a.entries[i].Delta < 0 {
			a.entries[i].Delta -= amount
			return
		}
	}
	a.entries = append(a.entries, Entry{Node: node, Delta: -amount})
}

// Entries returns a copy of the entries in insertion order.
func (a *Accumulator) Entries() []Entry {
	entries := make([]Entry, len(a.entries))
	copy(entries, a.entries)
	return entries
}

func (a *Accumulator) Len() int {
	return len(a.entries)
}

// Net is everything placed minus everything taken back.
func (a *Accumulator) Net() int {
	net := 0
	for _, e := range a.entries {
		net += e.Delta
	}
	return net
}

// Check verifies the move does not spend more than limit.
func (a *Accumulator) Check(limit int) error {
	if net := a.Net(); net > limit {
		return fmt.Errorf("net %d against a limit of %d: %w", net, limit, ErrOverBudget)
	}
	return nil
}

// Lines renders the entries as "node,delta" records.
func (a *Accumulator) Lines() []string {
	lines := make([]string, len(a.entries))
	for i, e := range a.entries {
		lines[i] = e.String()
	}
	return lines
}

// WriteTo writes one record per line without a trailing newline.
func (a *Accumulator) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, strings.Join(a.Lines(), "\n"))
	return int64(n), err
}
