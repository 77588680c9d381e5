package builder_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/katalvlaran/una/builder"
)

func TestWeightFnConstructors_Panic(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		fn   func() builder.WeightFn
	}{
		{"ConstantWeightFn_negative", func() builder.WeightFn { return builder.ConstantWeightFn(-1) }},
		{"UniformWeightFn_minNegative", func() builder.WeightFn { return builder.UniformWeightFn(-1, 5) }},
		{"UniformWeightFn_maxLessThanMin", func() builder.WeightFn { return builder.UniformWeightFn(5, 4) }},
		{"NormalWeightFn_stddevNegative", func() builder.WeightFn { return builder.NormalWeightFn(0, -0.1) }},
		{"ExponentialWeightFn_zeroRate", func() builder.WeightFn { return builder.ExponentialWeightFn(0) }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Panics(t, func() { tc.fn() })
		})
	}
}

func TestWeightFnBehavior(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	assert.Equal(t, builder.DefaultNodeWeight, builder.DefaultWeightFn(rng))
	assert.Equal(t, 2.5, builder.ConstantWeightFn(2.5)(rng))

	u := builder.UniformWeightFn(2, 4)
	assert.Equal(t, 3.0, u(nil))
	for i := 0; i < 100; i++ {
		v := u(rng)
		assert.GreaterOrEqual(t, v, 2.0)
		assert.Less(t, v, 4.0)
	}

	assert.Equal(t, 0.0, builder.NormalWeightFn(-3, 1)(nil))
	assert.Equal(t, 1.0/4, builder.ExponentialWeightFn(4)(nil))
	for i := 0; i < 100; i++ {
		assert.GreaterOrEqual(t, builder.NormalWeightFn(1, 5)(rng), 0.0)
		assert.GreaterOrEqual(t, builder.ExponentialWeightFn(2)(rng), 0.0)
	}
}

func TestIDFns(t *testing.T) {
	assert.Equal(t, "42", builder.DefaultIDFn(42))
	assert.Equal(t, "A", builder.ExcelColumnIDFn(0))
	assert.Equal(t, "Z", builder.ExcelColumnIDFn(25))
	assert.Equal(t, "AB", builder.ExcelColumnIDFn(27))
	assert.Equal(t, "St 3", builder.SymbolNumberIDFn("St ")(3))
	assert.Panics(t, func() { builder.ExcelColumnIDFn(-1) })
}
