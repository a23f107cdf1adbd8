package mq

import (
	"bytes"
	"encoding/json"
	"strings"

	"mqc/breakpoints"
)

// Snapshot describes every length breakpoint relative to the active one. It
// is exported into stylesheets so scripts could learn which breakpoints
// match at the moment.
type Snapshot struct {
	tiers  []breakpoints.Breakpoint
	active int
}

// NewSnapshot builds snapshot for registry tiers with named breakpoint
// active.
func NewSnapshot(reg *breakpoints.Registry, active string) (*Snapshot, error) {
	tiers, err := reg.Tiers()
	if err != nil {
		return nil, err
	}
	for i, t := range tiers {
		if t.Name == active {
			return &Snapshot{tiers: tiers, active: i}, nil
		}
	}
	return nil, &breakpoints.UndefinedError{Name: active, Submap: "lengths"}
}

// Active returns name of active breakpoint.
func (s *Snapshot) Active() string {
	return s.tiers[s.active].Name
}

// Tiers returns breakpoints snapshot was built from, in ascending order.
func (s *Snapshot) Tiers() []breakpoints.Breakpoint {
	return append([]breakpoints.Breakpoint(nil), s.tiers...)
}

// MarshalJSON implements json.Marshaler.
func (s *Snapshot) MarshalJSON() ([]byte, error) {
	return []byte(s.String()), nil
}

// String renders snapshot as JSON with four views: raw values, "from"
// (breakpoint at or below active), "until" (breakpoint above active) and
// "from-until" for every ascending pair.
func (s *Snapshot) String() string {
	var w objectWriter

	w.open()

	w.key("values")
	w.open()
	for _, t := range s.tiers {
		w.key(t.Name)
		w.str(t.Raw)
	}
	w.close()

	w.key("from")
	w.open()
	for i, t := range s.tiers {
		w.key(t.Name)
		w.open()
		w.key("from")
		w.str(t.Raw)
		w.key("active")
		w.boolean(i <= s.active)
		w.close()
	}
	w.close()

	w.key("until")
	w.open()
	for i, t := range s.tiers {
		w.key(t.Name)
		w.open()
		w.key("until")
		w.str(t.Raw)
		w.key("active")
		w.boolean(i > s.active)
		w.close()
	}
	w.close()

	w.key("from-until")
	w.open()
	for i, from := range s.tiers {
		for j := i + 1; j < len(s.tiers); j++ {
			until := s.tiers[j]
			w.key(from.Name + "-until-" + until.Name)
			w.open()
			w.key("from")
			w.str(from.Raw)
			w.key("until")
			w.str(until.Raw)
			w.key("active")
			w.boolean(i <= s.active && j > s.active)
			w.close()
		}
	}
	w.close()

	w.close()
	return w.b.String()
}

// objectWriter produces JSON objects with keys in insertion order and
// ", " / ": " separators.
type objectWriter struct {
	b     strings.Builder
	first []bool
}

func (w *objectWriter) open() {
	w.b.WriteByte('{')
	w.first = append(w.first, true)
}

func (w *objectWriter) close() {
	w.b.WriteByte('}')
	w.first = w.first[:len(w.first)-1]
}

func (w *objectWriter) key(k string) {
	top := len(w.first) - 1
	if !w.first[top] {
		w.b.WriteString(", ")
	}
	w.first[top] = false
	w.str(k)
	w.b.WriteString(": ")
}

// str writes quoted string leaving <, > and & as they are.
func (w *objectWriter) str(s string) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(s)
	w.b.Write(bytes.TrimSuffix(buf.Bytes(), []byte{'\n'}))
}

func (w *objectWriter) boolean(v bool) {
	if v {
		w.b.WriteString("true")
	} else {
		w.b.WriteString("false")
	}
}
