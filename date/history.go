package date

import (
	"iter"
	"slices"
)

// History stores a chronological series of values, each associated with a specific date.
// It ensures that dates are unique and the series is always sorted.
type History[T any] struct {
	days   []Date
	values []T
}

// compare orders dates chronologically.
func compare(d, t Date) int {
	switch {
	case d.Before(t):
		return -1
	case d.After(t):
		return 1
	default:
		return 0
	}
}

// Latest returns the latest date and value in the history.
// If the history is empty, it returns zero value.
func (h *History[T]) Latest() (day Date, value T) {
	last := len(h.days) - 1
	if last < 0 {
		return Date{}, value
	}
	return h.days[last], h.values[last]
}

// Len returns the number of items in the history.
func (h *History[T]) Len() int { return len(h.days) }

// Append adds a point to the history.
//
// Existing value at that date is overwritten.
func (h *History[T]) Append(on Date, v T) *History[T] {
	i, found := slices.BinarySearchFunc(h.days, on, compare)
	if found {
		h.values[i] = v
		return h
	}
	h.days = slices.Insert(h.days, i, on)
	h.values = slices.Insert(h.values, i, v)
	return h
}

// Values returns an iterator over all date/value pairs in the history, in chronological order.
func (h *History[T]) Values() iter.Seq2[Date, T] {
	return func(yield func(Date, T) bool) {
		for i, on := range h.days {
			if !yield(on, h.values[i]) {
				return
			}
		}
	}
}

// Get returns the value at 'day' and true or zero value and false.
func (h *History[T]) Get(day Date) (value T, ok bool) {
	if i, found := slices.BinarySearchFunc(h.days, day, compare); found {
		return h.values[i], true
	}
	return value, false
}

// ValueAsOf returns the value on a given day, or the most recent value before it.
// It returns the value, the day it was recorded and true if found, otherwise it
// returns the zero value and false.
func (h *History[T]) ValueAsOf(day Date) (value T, on Date, ok bool) {
	i, found := slices.BinarySearchFunc(h.days, day, compare)
	if found {
		return h.values[i], h.days[i], true
	}
	// `i` is the index where `day` would be inserted, the value we want is at `i-1`.
	if i == 0 {
		return value, Date{}, false
	}
	return h.values[i-1], h.days[i-1], true
}
