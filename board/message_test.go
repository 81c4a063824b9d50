/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package board

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestDecodeEvent_Valid(t *testing.T) {
	cases := []struct {
		raw  string
		want Event
	}{
		{`{"type":"draw","point":{"x":0,"y":0}}`, Event{Type: TypeDraw, Point: Point{}}},
		{`{"type":"draw","point":{"x":-2.5,"y":1e3,"pressure":1}}`, Event{Type: TypeDraw, Point: Point{X: -2.5, Y: 1000}}},
		{`{"type":"endPath"}`, Event{Type: TypeEndPath}},
		{`{"type":"clear","extra":true}`, Event{Type: TypeClear}},
		{`{"type":"draw","point":{"x":1,"y":2,"X":"a"}}`, Event{Type: TypeDraw, Point: Point{X: 1, Y: 2}}},
		{`{"type":"clear","Type":"draw"}`, Event{Type: TypeClear}},
	}

	for _, tc := range cases {
		got, err := DecodeEvent([]byte(tc.raw))
		if err != nil {
			t.Errorf("DecodeEvent(%s): unexpected error: %v", tc.raw, err)
			continue
		}
		if got != tc.want {
			t.Errorf("DecodeEvent(%s): got %+v, want %+v", tc.raw, got, tc.want)
		}
	}
}

func TestDecodeEvent_Rejects(t *testing.T) {
	cases := []struct {
		raw  string
		want error
	}{
		{`not json`, ErrMalformed},
		{``, ErrMalformed},
		{`{"type":123}`, ErrMalformed},
		{`{"type":"draw","point":{"x":"a"}}`, ErrMalformed},
		{`{"type":"draw","point":{"x":1,"y":1e400}}`, ErrMalformed},
		{`{"type":"draw"}`, ErrInvalidPoint},
		{`{"type":"draw","point":null}`, ErrInvalidPoint},
		{`{"type":"draw","point":{"x":1}}`, ErrInvalidPoint},
		{`{"type":"draw","point":{"x":null,"y":2}}`, ErrInvalidPoint},
		{`{}`, ErrUnknownType},
		{`null`, ErrUnknownType},
		{`{"type":"undo"}`, ErrUnknownType},
		{`{"type":"history","paths":[]}`, ErrUnknownType},
		{`{"TYPE":"clear"}`, ErrUnknownType},
		{`{"Type":"draw","Point":{"X":1,"Y":2}}`, ErrUnknownType},
		{`{"type":"draw","Point":{"x":1,"y":2}}`, ErrInvalidPoint},
		{`{"type":"draw","point":{"X":1,"Y":2}}`, ErrInvalidPoint},
		{`{"type":"draw","point":[1,2]}`, ErrMalformed},
	}

	for _, tc := range cases {
		_, err := DecodeEvent([]byte(tc.raw))
		if !errors.Is(err, tc.want) {
			t.Errorf("DecodeEvent(%q): got %v, want %v", tc.raw, err, tc.want)
		}
	}
}

func TestEndPathMessage_OmitsEmptyPath(t *testing.T) {
	data, err := json.Marshal(EndPathMessage{Type: TypeEndPath, ClientID: 4})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if got, want := string(data), `{"type":"endPath","clientId":4}`; got != want {
		t.Errorf("got %s, want %s", got, want)
	}
}

func TestHistoryMessage_EmptyPathsIsArray(t *testing.T) {
	data, err := json.Marshal(newHistoryMessage(nil))
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if got, want := string(data), `{"type":"history","paths":[]}`; got != want {
		t.Errorf("got %s, want %s", got, want)
	}
}
