/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package board

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

const (
	TypeHistory = "history"
	TypeDraw    = "draw"
	TypeEndPath = "endPath"
	TypeClear   = "clear"
)

var (
	ErrMalformed    = errors.New("malformed message")
	ErrUnknownType  = errors.New("unknown message type")
	ErrInvalidPoint = errors.New("invalid point")
)

// Messages coming from clients are read as raw objects. encoding/json
// matches struct fields case-insensitively, so keys are looked up by hand
// to accept exactly "type", "point", "x" and "y".
type rawObject map[string]json.RawMessage

// field returns the raw value under key, treating null as absent.
func (o rawObject) field(key string) (json.RawMessage, bool) {
	raw, ok := o[key]
	if !ok || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return nil, false
	}
	return raw, true
}

// Event is a validated client message.
type Event struct {
	Type  string
	Point Point
}

// DecodeEvent parses one inbound frame. Any error means the frame must be
// ignored without touching state.
func DecodeEvent(data []byte) (Event, error) {
	var msg rawObject
	if err := json.Unmarshal(data, &msg); err != nil {
		return Event{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	var typ string
	if raw, ok := msg.field("type"); ok {
		if err := json.Unmarshal(raw, &typ); err != nil {
			return Event{}, fmt.Errorf("%w: type: %v", ErrMalformed, err)
		}
	}

	switch typ {
	case TypeDraw:
		p, err := decodePoint(msg)
		if err != nil {
			return Event{}, err
		}
		return Event{Type: TypeDraw, Point: p}, nil
	case TypeEndPath, TypeClear:
		return Event{Type: typ}, nil
	default:
		return Event{}, fmt.Errorf("%w: %q", ErrUnknownType, typ)
	}
}

func decodePoint(msg rawObject) (Point, error) {
	raw, ok := msg.field("point")
	if !ok {
		return Point{}, fmt.Errorf("%w: draw requires point.x and point.y", ErrInvalidPoint)
	}

	var obj rawObject
	if err := json.Unmarshal(raw, &obj); err != nil {
		return Point{}, fmt.Errorf("%w: point: %v", ErrMalformed, err)
	}

	var coords [2]float64
	for i, key := range []string{"x", "y"} {
		raw, ok := obj.field(key)
		if !ok {
			return Point{}, fmt.Errorf("%w: draw requires point.x and point.y", ErrInvalidPoint)
		}
		if err := json.Unmarshal(raw, &coords[i]); err != nil {
			return Point{}, fmt.Errorf("%w: point.%s: %v", ErrMalformed, key, err)
		}
	}

	p := Point{X: coords[0], Y: coords[1]}
	if !p.finite() {
		return Point{}, fmt.Errorf("%w: coordinates must be finite", ErrInvalidPoint)
	}
	return p, nil
}

// Messages sent to clients

// HistoryMessage is sent once, to the joining client only.
type HistoryMessage struct {
	Type  string   `json:"type"`  // "history"
	Paths []Stroke `json:"paths"` // finalized strokes, oldest first
}

type DrawMessage struct {
	Type     string   `json:"type"` // "draw"
	ClientID ClientID `json:"clientId"`
	Point    Point    `json:"point"`
}

// EndPathMessage omits Path when the finalized stroke was empty.
type EndPathMessage struct {
	Type     string   `json:"type"` // "endPath"
	ClientID ClientID `json:"clientId"`
	Path     Stroke   `json:"path,omitempty"`
}

type ClearMessage struct {
	Type     string   `json:"type"` // "clear"
	ClientID ClientID `json:"clientId"`
}

func newHistoryMessage(paths []Stroke) HistoryMessage {
	if paths == nil {
		paths = []Stroke{}
	}
	return HistoryMessage{Type: TypeHistory, Paths: paths}
}
