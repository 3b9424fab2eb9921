package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPairKeyIsOrderIndependent(t *testing.T) {
	assert.Equal(t, PairKey("시청", "1호선", "2호선"), PairKey("시청", "2호선", "1호선"))
}

func TestPairKeyDiffersByStationOrLine(t *testing.T) {
	base := PairKey("시청", "1호선", "2호선")
	assert.NotEqual(t, base, PairKey("서울역", "1호선", "2호선"))
	assert.NotEqual(t, base, PairKey("시청", "1호선", "3호선"))
}

func TestTransferOverridesResolvePrecedence(t *testing.T) {
	t.Run("nil receiver resolves to zero", func(t *testing.T) {
		var overrides *TransferOverrides
		assert.Equal(t, 0, overrides.Resolve("시청", "1호선", "2호선"))
	})

	t.Run("per-pair override wins over per-station and default", func(t *testing.T) {
		overrides := &TransferOverrides{
			PerPair:    map[string]int{PairKey("시청", "1호선", "2호선"): 240},
			PerStation: map[string]int{"시청": 200},
			Default:    180,
		}
		assert.Equal(t, 240, overrides.Resolve("시청", "1호선", "2호선"))
	})

	t.Run("per-station override wins when no pair entry matches", func(t *testing.T) {
		overrides := &TransferOverrides{
			PerPair:    map[string]int{PairKey("시청", "1호선", "2호선"): 240},
			PerStation: map[string]int{"서울역": 200},
			Default:    180,
		}
		assert.Equal(t, 200, overrides.Resolve("서울역", "3호선", "4호선"))
	})

	t.Run("falls back to default when nothing matches", func(t *testing.T) {
		overrides := &TransferOverrides{Default: 180}
		assert.Equal(t, 180, overrides.Resolve("아무역", "1호선", "2호선"))
	})

	t.Run("pair lookup is symmetric regardless of argument order", func(t *testing.T) {
		overrides := &TransferOverrides{
			PerPair: map[string]int{PairKey("시청", "1호선", "2호선"): 240},
			Default: 180,
		}
		assert.Equal(t, 240, overrides.Resolve("시청", "2호선", "1호선"))
	})
}

func TestTravelTimeMinutesFloors(t *testing.T) {
	cases := []struct {
		seconds int
		want    int
	}{
		{0, 0},
		{59, 0},
		{60, 1},
		{125, 2},
		{179, 2},
		{180, 3},
	}
	for _, c := range cases {
		tt := TravelTime{Seconds: c.seconds}
		assert.Equal(t, c.want, tt.Minutes())
	}
}
