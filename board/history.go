/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package board

import "sync"

// History is the ordered record of finalized strokes served to late joiners.
type History struct {
	mu      sync.RWMutex
	strokes []Stroke
}

func NewHistory() *History {
	return &History{}
}

// Append finalizes s. Empty strokes are dropped.
func (h *History) Append(s Stroke) bool {
	if len(s) == 0 {
		return false
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	h.strokes = append(h.strokes, s.clip())

	return true
}

// Snapshot returns the strokes finalized so far. The result is never nil,
// and the strokes inside it are never modified after the fact.
func (h *History) Snapshot() []Stroke {
	h.mu.RLock()
	defer h.mu.RUnlock()

	out := make([]Stroke, len(h.strokes))
	copy(out, h.strokes)

	return out
}

func (h *History) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.strokes = nil
}

func (h *History) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return len(h.strokes)
}
