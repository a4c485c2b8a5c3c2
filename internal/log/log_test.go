package log_test

import (
	"bytes"
	"testing"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edwinsyarief/physbench"
	"github.com/edwinsyarief/physbench/internal/log"
)

func TestLogRegistry(t *testing.T) {
	var buf bytes.Buffer
	logger := log.New(&buf, zerolog.DebugLevel, true)
	r := physbench.NewRegistry(physbench.WithSeed(1))
	r.Populate(4)

	logger.ScenarioLogger("registry/velocity").LogRegistry(r, zerolog.InfoLevel)

	var entry struct {
		Level           string `json:"level"`
		Scenario        string `json:"scenario"`
		TotalEntities   int    `json:"total_entities"`
		TotalArchetypes int    `json:"total_archetypes"`
		Archetypes      []struct {
			Components string `json:"components"`
			Entities   int    `json:"entities"`
		} `json:"archetypes"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "info", entry.Level)
	assert.Equal(t, "registry/velocity", entry.Scenario)
	assert.Equal(t, 12, entry.TotalEntities)
	assert.Equal(t, 3, entry.TotalArchetypes)
	require.Len(t, entry.Archetypes, 3)
	assert.Equal(t, "Translation+Velocity", entry.Archetypes[0].Components)
	assert.Equal(t, 4, entry.Archetypes[0].Entities)
	assert.Equal(t, "Acceleration+Translation+Velocity", entry.Archetypes[2].Components)
}

func TestLogLevelFilters(t *testing.T) {
	var buf bytes.Buffer
	logger := log.New(&buf, zerolog.WarnLevel, true)
	logger.LogRegistry(physbench.NewRegistry(), zerolog.InfoLevel)
	assert.Empty(t, buf.String())
}

func TestNop(t *testing.T) {
	assert.NotPanics(t, func() {
		log.Nop().LogRegistry(physbench.NewRegistry(), zerolog.ErrorLevel)
	})
}
