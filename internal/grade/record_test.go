package grade

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRecord_PassedIsDerivedFromScore(t *testing.T) {
	tests := []struct {
		score float64
		want  bool
	}{
		{0, false},
		{59.99, false},
		{60, true},
		{60.01, true},
		{100, true},
	}

	for _, tt := range tests {
		r := New(Mathematics, tt.score)
		assert.Equal(t, tt.want, r.Passed(), "score %v", tt.score)
	}
}

func TestRecord_Failing(t *testing.T) {
	assert.True(t, New(Mathematics, 45).Failing(Mathematics))
	assert.False(t, New(Mathematics, 45).Failing(Physics))
	assert.False(t, New(Mathematics, 75).Failing(Mathematics))
}

func TestRecord_ValueEquality(t *testing.T) {
	a := New(Physics, 82)
	b := a
	b.Score = 10

	assert.Equal(t, 82.0, a.Score)
	assert.Equal(t, New(Physics, 82), a)
}

func TestRecord_String(t *testing.T) {
	assert.Equal(t, "Mathematics:55", New(Mathematics, 55).String())
	assert.Equal(t, "Physics:82.5", New(Physics, 82.5).String())
}

func TestValidateScore(t *testing.T) {
	for _, ok := range []float64{0, 0.5, 59.9, 100} {
		assert.NoError(t, ValidateScore(ok), "score %v", ok)
	}
	for _, bad := range []float64{-0.1, 100.01, math.NaN(), math.Inf(1), math.Inf(-1)} {
		assert.Error(t, ValidateScore(bad), "score %v", bad)
	}
}
