package notes

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

var ErrMalformedNotes = errors.New("malformed notes")

// Parse reads a notes file. Keys missing from the file keep their defaults.
func Parse(r io.Reader) (*Memory, error) {
	m := Default(0, 0)
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(m); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("empty notes: %w", ErrMalformedNotes)
		}
		return nil, fmt.Errorf("%w: %v", ErrMalformedNotes, err)
	}
	if err := m.validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedNotes, err)
	}
	if len(m.MyAttacks) == 0 {
		m.MyAttacks = nil
	}
	if len(m.Abandoned) == 0 {
		m.Abandoned = nil
	}
	return m, nil
}

func (m *Memory) validate() error {
	if m.Round < 0 {
		return fmt.Errorf("negative round %d", m.Round)
	}
	if m.AttackBuffer < 1 {
		return fmt.Errorf("attack buffer %g below 1", m.AttackBuffer)
	}
	for i, v := range m.Ratios {
		if v < 0 {
			return fmt.Errorf("negative %s ratio %g", Slot(i), v)
		}
	}
	if sum := m.Ratios.Sum(); sum > 1+1e-9 {
		return fmt.Errorf("ratios sum to %g", sum)
	}
	return nil
}

// Serialize writes m as one key per line.
func Serialize(w io.Writer, m *Memory) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(m); err != nil {
		return err
	}
	return encoder.Close()
}

// ReadFile parses the notes file at path.
func ReadFile(path string) (*Memory, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	m, err := Parse(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

// WriteFile replaces the notes file at path with m.
func WriteFile(path string, m *Memory) error {
	var buf bytes.Buffer
	if err := Serialize(&buf, m); err != nil {
		return err
	}
	return os.WriteFile(path, buf.Bytes(), 0644)
}
