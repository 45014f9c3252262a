// Package scoremap provides the diagnosis score map used throughout the
// fusion pipeline: a mapping from free-form diagnosis name to a non-negative
// score, normalized so the values sum to 100 percentage points.
package scoremap

import (
	"math"
	"sort"
)

// Map maps a diagnosis name to a non-negative score. Names are free-form
// strings, not an enum: rules and the narrative advisor can mint new ones.
// A Map is owned by a single request and never shared across goroutines.
type Map map[string]float64

// Entry is one diagnosis with its score, used for sorted output.
type Entry struct {
	Name  string  `json:"name"`
	Score float64 `json:"score"`
}

// Clone returns an independent copy.
func (m Map) Clone() Map {
	out := make(Map, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// Normalize rescales all values so they sum to 100, rounding each to one
// decimal place. An empty or all-zero map is left unchanged. Applying
// Normalize twice yields the same map as applying it once, within rounding.
func (m Map) Normalize() {
	total := 0.0
	for _, v := range m {
		total += v
	}
	if total <= 0 {
		return
	}
	for k, v := range m {
		m[k] = round1(v / total * 100)
	}
}

// Clamp caps every value at max.
func (m Map) Clamp(max float64) {
	for k, v := range m {
		if v > max {
			m[k] = max
		}
	}
}

// DropBelow removes every entry with a value at or below threshold.
func (m Map) DropBelow(threshold float64) {
	for k, v := range m {
		if v <= threshold {
			delete(m, k)
		}
	}
}

// Boost multiplies the named entry by factor if it is present.
func (m Map) Boost(name string, factor float64) {
	if v, ok := m[name]; ok {
		m[name] = v * factor
	}
}

// RaiseTo sets the named entry to at least floor: floors win over lower
// existing values but never reduce higher ones.
func (m Map) RaiseTo(name string, floor float64) {
	if m[name] < floor {
		m[name] = floor
	}
}

// FloorDropRenorm applies the end-of-filter sequence: clamp every value to a
// floor, drop entries at or below the floor, renormalize to 100, then keep
// only entries above the visibility threshold. The floor-then-drop order
// avoids division by zero when all scores collapse.
func (m Map) FloorDropRenorm(floor, visibility float64) {
	for k, v := range m {
		if v <= floor {
			delete(m, k)
		}
	}
	m.Normalize()
	m.DropBelow(visibility)
}

// Top returns the highest-scoring diagnosis name and its score. ok is false
// for an empty map.
func (m Map) Top() (name string, score float64, ok bool) {
	for k, v := range m {
		if !ok || v > score || (v == score && k < name) {
			name, score, ok = k, v, true
		}
	}
	return name, score, ok
}

// SortedEntries returns all entries sorted by descending score, ties broken
// by name for deterministic output.
func (m Map) SortedEntries() []Entry {
	out := make([]Entry, 0, len(m))
	for k, v := range m {
		out = append(out, Entry{Name: k, Score: v})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// Truncate keeps only the n highest-scoring entries.
func (m Map) Truncate(n int) {
	if len(m) <= n {
		return
	}
	entries := m.SortedEntries()
	for _, e := range entries[n:] {
		delete(m, e.Name)
	}
}

// Sum returns the total of all values.
func (m Map) Sum() float64 {
	total := 0.0
	for _, v := range m {
		total += v
	}
	return total
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
