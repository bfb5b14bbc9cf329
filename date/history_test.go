package date

import "testing"

func TestAppend(t *testing.T) {
	h := new(History[string])
	d1, v1 := New(2025, 07, 01), "25 Jul 1"
	d2, v2 := New(2024, 07, 01), "24 Jul 1"

	// Test is about appending two values in reverse order and checking that everything is
	// as expected at every step of the way.

	if h.Len() != 0 {
		t.Errorf("History.Len() = %v want 0", h.Len())
	}

	h.Append(d1, v1)
	if h.Len() != 1 {
		t.Errorf("Append(d1, v1).Len() = %v want 1", h.Len())
	}

	h.Append(d2, v2)
	if h.Len() != 2 {
		t.Errorf("Append(d2, v2).Len() = %v want 2", h.Len())
	}

	if h.days[1] != d1 {
		t.Errorf("history[1].day = %v want %v", h.days[1], d1)
	}
	if h.days[0] != d2 {
		t.Errorf("history[0].day = %v want %v", h.days[0], d2)
	}

	h.Append(d1, "overwritten")
	if got, _ := h.Get(d1); got != "overwritten" {
		t.Errorf("Get(d1) = %v want %v", got, "overwritten")
	}
	if h.Len() != 2 {
		t.Errorf("Append(d1, v).Len() = %v want 2", h.Len())
	}
}

func TestValueAsOf(t *testing.T) {
	h := new(History[int])
	h.Append(New(2025, 1, 10), 10).Append(New(2025, 1, 20), 20)

	testCases := []struct {
		on     Date
		want   int
		wantOn Date
		ok     bool
	}{
		{on: New(2025, 1, 9), ok: false},
		{on: New(2025, 1, 10), want: 10, wantOn: New(2025, 1, 10), ok: true},
		{on: New(2025, 1, 15), want: 10, wantOn: New(2025, 1, 10), ok: true},
		{on: New(2025, 1, 25), want: 20, wantOn: New(2025, 1, 20), ok: true},
	}
	for _, tc := range testCases {
		got, on, ok := h.ValueAsOf(tc.on)
		if ok != tc.ok || got != tc.want || on != tc.wantOn {
			t.Errorf("ValueAsOf(%v) = %v, %v, %v want %v, %v, %v", tc.on, got, on, ok, tc.want, tc.wantOn, tc.ok)
		}
	}

	if day, v := h.Latest(); day != New(2025, 1, 20) || v != 20 {
		t.Errorf("Latest() = %v, %v want 2025-01-20, 20", day, v)
	}
}
