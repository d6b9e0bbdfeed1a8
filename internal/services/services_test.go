package services

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/valpere/nalsi/internal/config"
	"github.com/valpere/nalsi/pkg/metrics"
	"github.com/valpere/nalsi/tests/helpers"
)

func TestNew(t *testing.T) {
	mockDB := helpers.NewMockDB(t)
	defer mockDB.Close()
	logger := helpers.NewSilentTestLogger()

	t.Run("all services initialized", func(t *testing.T) {
		cfg := helpers.GetTestConfig()

		reg := prometheus.NewRegistry()
		svcs, err := New(mockDB.DB, cfg, logger, metrics.NewWithRegistry(reg, reg))

		require.NoError(t, err)
		assert.NotNil(t, svcs.User)
		assert.NotNil(t, svcs.Weather)
		assert.NotNil(t, svcs.Localization)
		assert.GreaterOrEqual(t, svcs.Uptime().Nanoseconds(), int64(0))
	})

	t.Run("without metrics", func(t *testing.T) {
		svcs, err := New(mockDB.DB, helpers.GetMinimalTestConfig(), logger, nil)

		require.NoError(t, err)
		assert.NotNil(t, svcs.Weather)
	})

	t.Run("bad timezone", func(t *testing.T) {
		cfg := &config.Config{Weather: config.WeatherConfig{APIKey: "test-key", Timezone: "Mars/Base"}}

		svcs, err := New(mockDB.DB, cfg, logger, nil)

		assert.Error(t, err)
		assert.Nil(t, svcs)
	})
}
