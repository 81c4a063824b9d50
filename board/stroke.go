/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package board

import "math"

// ClientID identifies a participant for the lifetime of its connection.
type ClientID uint64

// Point is a single sampled pointer position.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func (p Point) finite() bool {
	return !math.IsNaN(p.X) && !math.IsInf(p.X, 0) &&
		!math.IsNaN(p.Y) && !math.IsInf(p.Y, 0)
}

// Stroke is an ordered run of points drawn by one participant.
type Stroke []Point

// clip caps the stroke's capacity so appends by a holder of the
// returned slice can never write into shared backing storage.
func (s Stroke) clip() Stroke {
	return s[:len(s):len(s)]
}

func (s Stroke) clone() Stroke {
	if s == nil {
		return nil
	}
	out := make(Stroke, len(s))
	copy(out, s)
	return out
}
