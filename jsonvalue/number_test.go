package jsonvalue_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lattice-substrate/json-wtf/jsonvalue"
)

func TestNewNumberRejectsNonFinite(t *testing.T) {
	for _, f := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		_, err := jsonvalue.NewNumber(f)
		require.ErrorIs(t, err, jsonvalue.ErrNotFinite)
		_, err = jsonvalue.Float(f)
		require.ErrorIs(t, err, jsonvalue.ErrNotFinite)
	}
	assert.Panics(t, func() { jsonvalue.MustNumber(math.NaN()) })
}

func TestNumberTotalOrder(t *testing.T) {
	negZero := math.Copysign(0, -1)
	ordered := []float64{
		-math.MaxFloat64, -1e10, -1, -math.SmallestNonzeroFloat64,
		negZero, 0,
		math.SmallestNonzeroFloat64, 0.5, 1, 1e300, math.MaxFloat64,
	}
	for i := range ordered {
		for j := range ordered {
			a, b := jsonvalue.MustNumber(ordered[i]), jsonvalue.MustNumber(ordered[j])
			want := 0
			switch {
			case i < j:
				want = -1
			case i > j:
				want = 1
			}
			assert.Equal(t, want, a.Compare(b), "Compare(%v, %v)", ordered[i], ordered[j])
			assert.Equal(t, i == j, a.Equal(b))
		}
	}
}

func TestNegativeZeroIsDistinct(t *testing.T) {
	pos := jsonvalue.MustNumber(0)
	neg := jsonvalue.MustNumber(math.Copysign(0, -1))
	assert.False(t, pos.Equal(neg))
	assert.NotEqual(t, pos.Hash(), neg.Hash())
	assert.Equal(t, "-0", neg.String())
	assert.Equal(t, "0", pos.String())
}

func TestIntNumber(t *testing.T) {
	assert.Equal(t, "42", jsonvalue.IntNumber(42).String())
	assert.Equal(t, "9007199254740992", jsonvalue.IntNumber(1<<53+1).String())
}

func TestNumberAppendJSONMatchesString(t *testing.T) {
	for _, f := range []float64{0, math.Copysign(0, -1), 0.1, -1.5, 1e21, 1e-7, 5e-324, math.MaxFloat64} {
		n := jsonvalue.MustNumber(f)
		assert.Equal(t, "x="+n.String(), string(n.AppendJSON([]byte("x="))))
	}
	var zero jsonvalue.Number
	assert.Equal(t, "0", zero.String())
}
