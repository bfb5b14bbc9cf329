package parse

import (
	"testing"

	"github.com/etnz/finmgr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanAmount(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"12.50", "12.5"},
		{"$1,234.56", "1234.56"},
		{"(17.99)", "-17.99"},
		{"($2,000.00)", "-2000"},
		{"(42", "-42"},
		{"-3.5", "-3.5"},
		{" 7 ", "7"},
		{"-", "0"},
		{"", "0"},
	}
	for _, tt := range tests {
		got, err := CleanAmount(tt.in)
		require.NoError(t, err, tt.in)
		if got.String() != tt.want {
			t.Errorf("CleanAmount(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}

	_, err := CleanAmount("twelve")
	assert.Error(t, err)
	assert.True(t, MustAmount("twelve").IsZero())
}

func TestOptionalAmounts(t *testing.T) {
	m, err := OptionalMoney("-", "CAD")
	require.NoError(t, err)
	assert.False(t, m.IsPresent())

	m, err = OptionalMoney("0.00", "CAD")
	require.NoError(t, err)
	assert.True(t, m.IsPresent())

	m, err = NonZeroMoney("0.00", "CAD")
	require.NoError(t, err)
	assert.False(t, m.IsPresent())

	m, err = NonZeroMoney("(4.95)", "USD")
	require.NoError(t, err)
	v, ok := m.Get()
	require.True(t, ok)
	assert.True(t, v.Equal(finmgr.M(-4.95, "USD")))

	q, err := QuantityOrAbsent("1,000")
	require.NoError(t, err)
	assert.True(t, q.Or(finmgr.Q(0)).Equal(finmgr.Q(1000)))

	q, err = QuantityOrAbsent("0")
	require.NoError(t, err)
	assert.False(t, q.IsPresent())

	_, err = QuantityOrAbsent("n/a")
	assert.Error(t, err)
}

func TestSplitCSV(t *testing.T) {
	got := SplitCSV(`"2021-03-01","Buy","XEQ","ISHARES, MSCI EAFE","10",,"2021-03-03"`)
	assert.Equal(t, []string{"2021-03-01", "Buy", "XEQ", "ISHARES, MSCI EAFE", "10", "", "2021-03-03"}, got)
	assert.Empty(t, SplitCSV(""))
}
