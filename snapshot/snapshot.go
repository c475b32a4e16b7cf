// Package snapshot reads and writes the files the referee and the agent
// exchange: the step file describing the board, the move file and the
// prediction of the board after the move.
package snapshot

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"ringwars/move"
	"ringwars/ring"
	"ringwars/utils"
)

var ErrInvalidSnapshot = errors.New("invalid snapshot")

const lineCount = 4

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidSnapshot, fmt.Sprintf(format, args...))
}

// Read parses a step file: resource counts, ownership codes, new resources and
// the cap per node, one per line. Lines after the fourth are ignored.
func Read(r io.Reader, options ...ring.Option) (*ring.Ring, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(lines) < lineCount {
		return nil, invalid("%d lines, want %d", len(lines), lineCount)
	}
	if len(lines) > lineCount {
		log.Debug().Msgf("ignoring %d extra lines in the step file", len(lines)-lineCount)
	}

	counts, err := record(lines[0])
	if err != nil {
		return nil, invalid("line 1: %v", err)
	}
	codes, err := record(lines[1])
	if err != nil {
		return nil, invalid("line 2: %v", err)
	}
	if len(counts) != len(codes) {
		return nil, invalid("%d counts but %d ownership codes", len(counts), len(codes))
	}
	available, err := strconv.Atoi(strings.TrimSpace(lines[2]))
	if err != nil {
		return nil, invalid("line 3: %v", err)
	}
	maxPerNode, err := strconv.Atoi(strings.TrimSpace(lines[3]))
	if err != nil {
		return nil, invalid("line 4: %v", err)
	}
	if available < 0 {
		return nil, invalid("negative new resources %d", available)
	}
	if maxPerNode <= 0 {
		return nil, invalid("cap per node %d", maxPerNode)
	}

	nodes := make([]ring.Node, len(counts))
	for i := range counts {
		count, err := strconv.Atoi(counts[i])
		if err != nil {
			return nil, invalid("node %d: %v", i, err)
		}
		if count < -1 || count > maxPerNode {
			return nil, invalid("node %d: count %d outside [-1, %d]", i, count, maxPerNode)
		}
		code := codes[i]
		if (count == -1) != (code == "U") {
			return nil, invalid("node %d: count %d does not match code %q on visibility", i, count, code)
		}
		if (count == 0) != (code == "N") {
			return nil, invalid("node %d: count %d does not match code %q on control", i, count, code)
		}
		nodes[i] = ring.Node{ID: i, Owner: ring.ParseOwnership(code), Count: count}
	}
	return ring.New(nodes, maxPerNode, available, options...), nil
}

// record splits one comma separated line.
func record(line string) ([]string, error) {
	reader := csv.NewReader(strings.NewReader(line))
	reader.TrimLeadingSpace = true
	fields, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, errors.New("no nodes")
	}
	if err != nil {
		return nil, err
	}
	for i := range fields {
		fields[i] = strings.TrimSpace(fields[i])
	}
	return fields, nil
}

// ReadFile parses the step file at path.
func ReadFile(path string, options ...ring.Option) (*ring.Ring, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	r, err := Read(f, options...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return r, nil
}

// Write renders r in the step file format.
func Write(w io.Writer, r *ring.Ring) error {
	nodes := r.Nodes()
	counts := make([]string, len(nodes))
	codes := make([]string, len(nodes))
	for i, n := range nodes {
		count := n.Count
		if !n.Visible() {
			count = -1
		}
		counts[i] = strconv.Itoa(count)
		codes[i] = n.Owner.Code()
	}
	writer := csv.NewWriter(w)
	if err := writer.WriteAll([][]string{counts, codes}); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "%d\n%d", r.Available(), r.MaxPerNode())
	return err
}

// WritePrediction stores the board as this agent leaves it, for the next
// round to compare against.
func WritePrediction(path string, r *ring.Ring) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Write(f, r); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// ReadPrediction returns the ids of the nodes this agent held after its
// previous move.
func ReadPrediction(path string) ([]int, error) {
	r, err := ReadFile(path)
	if err != nil {
		return nil, err
	}
	return utils.Map(r.Owned(ring.Mine), func(n ring.Node) int { return n.ID }), nil
}

// WriteMove replaces the move file at path.
func WriteMove(path string, acc *move.Accumulator) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if _, err := acc.WriteTo(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
