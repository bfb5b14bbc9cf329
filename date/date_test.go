package date

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestTime assert that the time() is cannonical and gives comparable times.
func TestTime(t *testing.T) {
	d1 := New(2025, 7, 31)
	d2 := New(2025, 7, 31)

	if d1.time() != d2.time() {
		t.Errorf("invalid time() function same day gives two different time")
	}
}

func TestNewNormalizes(t *testing.T) {
	if got, want := New(2024, time.February, 30), New(2024, time.March, 1); got != want {
		t.Errorf("New(2024, 2, 30) = %v, want %v", got, want)
	}
	if got, want := New(1980, time.January, 1).Add(3), New(1980, time.January, 4); got != want {
		t.Errorf("Add(3) = %v, want %v", got, want)
	}
}

func TestParse(t *testing.T) {
	testCases := []struct {
		in      string
		want    Date
		wantErr bool
	}{
		{in: "2025-07-01", want: New(2025, 7, 1)},
		{in: "2025-7-1", want: New(2025, 7, 1)},
		{in: " 1980-01-01 ", want: New(1980, 1, 1)},
		{in: "0d", want: Today()},
		{in: "-1d", want: Today().Add(-1)},
		{in: "+1w", want: Today().Add(7)},
		{in: "07/01/2025", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tc := range testCases {
		t.Run(tc.in, func(t *testing.T) {
			got, err := Parse(tc.in)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestParseISO(t *testing.T) {
	got, err := ParseISO(" 2025-7-1 ")
	require.NoError(t, err)
	assert.Equal(t, New(2025, 7, 1), got)

	for _, in := range []string{"0d", "-1d", "+2m", "07/01/2025"} {
		_, err := ParseISO(in)
		assert.Error(t, err, in)
	}
}

func TestParseLayout(t *testing.T) {
	got, err := ParseLayout("1/2/2006", "3/15/2021")
	require.NoError(t, err)
	assert.Equal(t, New(2021, time.March, 15), got)

	_, err = ParseLayout("1/2/2006", "2021-03-15")
	assert.Error(t, err)
}

func TestSub(t *testing.T) {
	from, to := New(2024, 2, 27), New(2024, 3, 2)
	if got, want := to.Sub(from), 4; got != want {
		t.Errorf("Sub() = %v, want %v", got, want)
	}
	if got, want := from.Sub(to), -4; got != want {
		t.Errorf("Sub() = %v, want %v", got, want)
	}
}

func TestJSON(t *testing.T) {
	d := New(2021, 3, 5)
	b, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"2021-03-05"`, string(b))

	var back Date
	require.NoError(t, json.Unmarshal(b, &back))
	assert.Equal(t, d, back)
}

func TestRange(t *testing.T) {
	r := NewRange(New(1980, 1, 3), New(1980, 1, 1))
	assert.Equal(t, New(1980, 1, 1), r.From, "NewRange must swap reversed bounds")
	assert.Equal(t, 3, r.Len())
	assert.True(t, r.Contains(New(1980, 1, 2)))
	assert.False(t, r.Contains(New(1980, 1, 4)))

	var days []Date
	for d := range r.Days() {
		days = append(days, d)
	}
	assert.Equal(t, []Date{New(1980, 1, 1), New(1980, 1, 2), New(1980, 1, 3)}, days)
	assert.Equal(t, 0, Range{From: New(1980, 1, 2), To: New(1980, 1, 1)}.Len())
}
