/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package board

import "sync"

// Registry tracks live participants and the stroke each one is drawing.
type Registry struct {
	mu      sync.Mutex
	nextID  ClientID
	strokes map[ClientID]Stroke
}

func NewRegistry() *Registry {
	return &Registry{
		strokes: make(map[ClientID]Stroke),
	}
}

// Register allocates a fresh participant with an empty stroke.
// Identifiers are never reused.
func (r *Registry) Register() ClientID {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	r.strokes[r.nextID] = nil

	return r.nextID
}

// AppendPoint adds p to the in-progress stroke of id. It reports false,
// leaving state untouched, when id is unknown or p is not finite.
func (r *Registry) AppendPoint(id ClientID, p Point) bool {
	if !p.finite() {
		return false
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	stroke, ok := r.strokes[id]
	if !ok {
		return false
	}
	r.strokes[id] = append(stroke, p)

	return true
}

// TakeAndClear hands over the in-progress stroke of id, which may be
// empty, and resets it.
func (r *Registry) TakeAndClear(id ClientID) (Stroke, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stroke, ok := r.strokes[id]
	if !ok {
		return nil, false
	}
	r.strokes[id] = nil

	return stroke.clip(), true
}

// Unregister removes id and returns whatever stroke it still held so the
// caller can finalize it. Calling it again for the same id is a no-op.
func (r *Registry) Unregister(id ClientID) (Stroke, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stroke, ok := r.strokes[id]
	if !ok {
		return nil, false
	}
	delete(r.strokes, id)

	return stroke.clip(), true
}

// ClearAll empties every in-progress stroke but keeps the participants.
func (r *Registry) ClearAll() {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id := range r.strokes {
		r.strokes[id] = nil
	}
}

// InProgress returns a copy of the stroke id is currently drawing.
func (r *Registry) InProgress(id ClientID) (Stroke, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stroke, ok := r.strokes[id]
	if !ok {
		return nil, false
	}

	return stroke.clone(), true
}

func (r *Registry) Has(id ClientID) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.strokes[id]

	return ok
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.strokes)
}
