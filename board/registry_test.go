/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package board

import (
	"math"
	"reflect"
	"sync"
	"testing"
)

func TestRegistry_RegisterAssignsUniqueIDs(t *testing.T) {
	r := NewRegistry()

	a := r.Register()
	b := r.Register()
	if a != 1 || b != 2 {
		t.Fatalf("ids: got %d, %d, want 1, 2", a, b)
	}

	r.Unregister(a)
	if c := r.Register(); c != 3 {
		t.Errorf("id after unregister: got %d, want 3", c)
	}
}

func TestRegistry_AppendPointKeepsSendOrder(t *testing.T) {
	r := NewRegistry()
	id := r.Register()

	want := Stroke{{X: 0, Y: 0}, {X: 5, Y: 5}, {X: -1.5, Y: 2.25}}
	for _, p := range want {
		if !r.AppendPoint(id, p) {
			t.Fatalf("AppendPoint(%v): got false, want true", p)
		}
	}

	got, ok := r.InProgress(id)
	if !ok {
		t.Fatal("InProgress: participant missing")
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("stroke: got %v, want %v", got, want)
	}
}

func TestRegistry_AppendPointRejects(t *testing.T) {
	r := NewRegistry()
	id := r.Register()

	cases := []struct {
		name string
		id   ClientID
		p    Point
	}{
		{"unknown id", id + 1, Point{X: 1, Y: 1}},
		{"NaN x", id, Point{X: math.NaN(), Y: 1}},
		{"Inf y", id, Point{X: 1, Y: math.Inf(-1)}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if r.AppendPoint(tc.id, tc.p) {
				t.Error("AppendPoint: got true, want false")
			}
		})
	}

	if got, _ := r.InProgress(id); len(got) != 0 {
		t.Errorf("stroke after rejected appends: got %v, want empty", got)
	}
}

func TestRegistry_TakeAndClear(t *testing.T) {
	r := NewRegistry()
	id := r.Register()
	r.AppendPoint(id, Point{X: 1, Y: 2})

	got, ok := r.TakeAndClear(id)
	if !ok || len(got) != 1 {
		t.Fatalf("TakeAndClear: got %v, %v, want 1 point", got, ok)
	}

	again, ok := r.TakeAndClear(id)
	if !ok || len(again) != 0 {
		t.Errorf("second TakeAndClear: got %v, %v, want empty stroke", again, ok)
	}

	if _, ok := r.TakeAndClear(id + 1); ok {
		t.Error("TakeAndClear(unknown): got ok, want not ok")
	}
}

func TestRegistry_TakenStrokeIsDetached(t *testing.T) {
	r := NewRegistry()
	id := r.Register()
	r.AppendPoint(id, Point{X: 1, Y: 1})

	taken, _ := r.TakeAndClear(id)
	r.AppendPoint(id, Point{X: 9, Y: 9})

	if taken[0] != (Point{X: 1, Y: 1}) || len(taken) != 1 {
		t.Errorf("taken stroke changed: %v", taken)
	}
}

func TestRegistry_UnregisterIsIdempotent(t *testing.T) {
	r := NewRegistry()
	id := r.Register()
	r.AppendPoint(id, Point{X: 3, Y: 4})

	stroke, ok := r.Unregister(id)
	if !ok || len(stroke) != 1 {
		t.Fatalf("Unregister: got %v, %v, want leftover stroke", stroke, ok)
	}
	if _, ok := r.Unregister(id); ok {
		t.Error("second Unregister: got ok, want no-op")
	}
	if r.Has(id) {
		t.Error("Has after Unregister: got true")
	}
	if r.AppendPoint(id, Point{X: 1, Y: 1}) {
		t.Error("AppendPoint after Unregister: got true")
	}
}

func TestRegistry_ClearAllKeepsParticipants(t *testing.T) {
	r := NewRegistry()
	a, b := r.Register(), r.Register()
	r.AppendPoint(a, Point{X: 1, Y: 1})
	r.AppendPoint(b, Point{X: 2, Y: 2})

	r.ClearAll()

	for _, id := range []ClientID{a, b} {
		stroke, ok := r.InProgress(id)
		if !ok {
			t.Errorf("participant %d removed by ClearAll", id)
		}
		if len(stroke) != 0 {
			t.Errorf("participant %d stroke: got %v, want empty", id, stroke)
		}
	}
	if n := r.Len(); n != 2 {
		t.Errorf("Len: got %d, want 2", n)
	}
}

func TestRegistry_ConcurrentAppends(t *testing.T) {
	r := NewRegistry()

	const (
		writers = 8
		points  = 200
	)

	ids := make([]ClientID, writers)
	for i := range ids {
		ids[i] = r.Register()
	}

	var wg sync.WaitGroup
	for _, id := range ids {
		wg.Add(1)
		go func(id ClientID) {
			defer wg.Done()
			for i := 0; i < points; i++ {
				r.AppendPoint(id, Point{X: float64(i), Y: float64(id)})
			}
		}(id)
	}
	wg.Wait()

	for _, id := range ids {
		stroke, _ := r.InProgress(id)
		if len(stroke) != points {
			t.Fatalf("participant %d: got %d points, want %d", id, len(stroke), points)
		}
		for i, p := range stroke {
			if p.X != float64(i) || p.Y != float64(id) {
				t.Fatalf("participant %d point %d: got %v", id, i, p)
			}
		}
	}
}
