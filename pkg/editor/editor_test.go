package editor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nvramtool/pkg/models"
)

func testCollection() *models.Collection {
	return models.NewCollection([]*models.Setting{
		models.NewOptionsSetting("Intel(R) SpeedStep(tm)", nil, []models.Option{
			{Code: "00", Label: "Disabled"}, {Code: "01", Label: "Enabled"},
		}, 1),
		models.NewValueSetting("EC Polling Period", nil, "64", nil, nil, true),
	})
}

func TestApplySetSpec(t *testing.T) {
	c := testCollection()

	changed, err := ApplySetSpec(c, "Intel(R) SpeedStep(tm)=Disabled")
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, "Disabled", c.At(0).CurrentLabel())

	// Option code works where a label does not.
	changed, err = ApplySetSpec(c, "Intel(R) SpeedStep(tm)=01")
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, "Enabled", c.At(0).CurrentLabel())

	changed, err = ApplySetSpec(c, "EC Polling Period = 255")
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, "255", c.At(1).Value)
}

func TestApplySetSpecErrors(t *testing.T) {
	c := testCollection()

	_, err := ApplySetSpec(c, "no equals sign")
	assert.Error(t, err)

	_, err = ApplySetSpec(c, "EC Poling Period=128")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "did you mean", "close misses get suggestions")

	changed, err := ApplySetSpec(c, "Intel(R) SpeedStep(tm)=Warp Speed")
	require.NoError(t, err)
	assert.False(t, changed, "unknown option label stages nothing")
}

func TestSearchIndices(t *testing.T) {
	settings := testCollection().All()

	got := SearchIndices(settings, "polling")
	require.NotEmpty(t, got)
	assert.Equal(t, 1, got[0])

	assert.Empty(t, SearchIndices(settings, "zzzzzz"))
}
