package entropy

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStreamDeterministic(t *testing.T) {
	a := Stream(42, 7, HashString("wheat"))
	b := Stream(42, 7, HashString("wheat"))
	for i := 0; i < 16; i++ {
		assert.Equal(t, a.Float64(), b.Float64())
	}
}

func TestStreamSaltsDiffer(t *testing.T) {
	assert.NotEqual(t, Float(42, 1), Float(42, 2))
	assert.NotEqual(t, Float(42, 1), Float(43, 1))
	assert.NotEqual(t, Float(1, HashString("corn")), Float(1, HashString("wheat")))
}

func TestUniformRange(t *testing.T) {
	for day := uint64(0); day < 500; day++ {
		v := Uniform(-0.15, 0.15, 9, day)
		assert.GreaterOrEqual(t, v, -0.15)
		assert.Less(t, v, 0.15)
	}
}

func TestCryptoSeedNonZero(t *testing.T) {
	assert.NotZero(t, CryptoSeed())
}
