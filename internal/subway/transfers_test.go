package subway

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hosunrail/hosunrail_core/internal/models"
)

func TestLoadTransferOverrides(t *testing.T) {
	path := writeTempCSV(t, "station,line_from,line_to,seconds\n"+
		"시청,1호선,2호선,240\n"+
		"강남,,,90\n") // blank line columns -> per-station default

	overrides, report, err := LoadTransferOverrides(path, 180)
	require.NoError(t, err)
	assert.Equal(t, 2, report.RowsRead)
	assert.Equal(t, 180, overrides.Default)
	assert.Equal(t, 240, overrides.PerPair[models.PairKey("시청", "1호선", "2호선")])
	assert.Equal(t, 90, overrides.PerStation["강남"])
}

func TestLoadTransferOverridesSymmetricLookup(t *testing.T) {
	overrides := &models.TransferOverrides{
		PerPair:    map[string]int{models.PairKey("시청", "1호선", "2호선"): 240},
		PerStation: map[string]int{},
		Default:    180,
	}

	assert.Equal(t, 240, overrides.Resolve("시청", "1호선", "2호선"))
	assert.Equal(t, 240, overrides.Resolve("시청", "2호선", "1호선"))
}

func TestTransferOverridesResolveFallsBackToDefault(t *testing.T) {
	overrides := &models.TransferOverrides{
		PerPair:    map[string]int{},
		PerStation: map[string]int{},
		Default:    180,
	}
	assert.Equal(t, 180, overrides.Resolve("종각", "1호선", "2호선"))
}
