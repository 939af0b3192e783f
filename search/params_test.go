package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDistanceThresholdAbsolute(t *testing.T) {
	assert.Equal(t, uint8(3), AbsoluteThreshold(3).Resolve(100))
}

func TestDistanceThresholdRatio(t *testing.T) {
	// 0.2 * 10 = 2
	assert.Equal(t, uint8(2), RatioThreshold(0.2).Resolve(10))
}

func TestDistanceThresholdRatioWithLimit(t *testing.T) {
	th := RatioWithLimitThreshold(0.5, 2)
	assert.Equal(t, uint8(2), th.Resolve(10)) // 0.5*10=5, capped to 2
	assert.Equal(t, uint8(1), th.Resolve(2))  // 0.5*2=1, under the cap
}

func TestWeightsSum(t *testing.T) {
	w := DefaultWeights()
	assert.Equal(t, 5.0, w.Sum())
}
