package kdlast_test

import (
	"math"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kdl-org/kdl-go/kdlast"
)

func TestFormatFloat(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name string
		in   float64
		exp  string
	}{
		{name: "zero", in: 0, exp: "0.0"},
		{name: "plain", in: 3.14, exp: "3.14"},
		{name: "whole", in: 10, exp: "10.0"},
		{name: "nan", in: math.NaN(), exp: "#nan"},
		{name: "inf", in: math.Inf(1), exp: "#inf"},
		{name: "neg_inf", in: math.Inf(-1), exp: "#-inf"},
		{name: "large_scientific", in: 1.5e12, exp: "1.5E+12"},
		{name: "small_scientific", in: 2.5e-8, exp: "2.5E-8"},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.exp, kdlast.FormatFloat(tc.in))
		})
	}
}

func TestValueAccessors(t *testing.T) {
	t.Parallel()

	t.Run("int64_widens_to_bigint", func(t *testing.T) {
		t.Parallel()
		v := kdlast.NewInt64(kdlast.Range{}, 42, "42")
		bi, ok := v.AsBigInt()
		assert.True(t, ok)
		assert.Equal(t, big.NewInt(42), bi)
	})

	t.Run("bigint_narrows_to_int64_when_it_fits", func(t *testing.T) {
		t.Parallel()
		v := kdlast.NewBigInt(kdlast.Range{}, big.NewInt(7), "0x7")
		n, ok := v.AsInt64()
		assert.True(t, ok)
		assert.Equal(t, int64(7), n)
	})

	t.Run("bigint_does_not_narrow_when_it_overflows", func(t *testing.T) {
		t.Parallel()
		huge := new(big.Int).Lsh(big.NewInt(1), 100)
		v := kdlast.NewBigInt(kdlast.Range{}, huge, "")
		_, ok := v.AsInt64()
		assert.False(t, ok)
	})

	t.Run("uint64_rejects_negative", func(t *testing.T) {
		t.Parallel()
		v := kdlast.NewInt64(kdlast.Range{}, -1, "-1")
		_, ok := v.Uint64()
		assert.False(t, ok)
	})

	t.Run("int_checks_width", func(t *testing.T) {
		t.Parallel()
		v := kdlast.NewInt64(kdlast.Range{}, 300, "300")
		_, ok := v.Int(8, true)
		assert.False(t, ok)
		n, ok := v.Int(16, true)
		assert.True(t, ok)
		assert.Equal(t, int64(300), n)
	})

	t.Run("string_renders_canonically", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "#null", kdlast.NewNull(kdlast.Range{}).String())
		assert.Equal(t, "#true", kdlast.NewBool(kdlast.Range{}, true).String())
		assert.Equal(t, "3.0", kdlast.NewFloat64(kdlast.Range{}, 3, "3.0").String())
	})
}
