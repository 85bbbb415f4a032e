package utils

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
)

func TestSetupLogger_Level(t *testing.T) {
	defer zerolog.SetGlobalLevel(zerolog.DebugLevel)

	var buf bytes.Buffer
	setupLogger(&buf, "warn")
	log.Info().Msg("leise")
	log.Warn().Msg("laut")

	assert.Equal(t, zerolog.WarnLevel, zerolog.GlobalLevel())
	assert.NotContains(t, buf.String(), "leise")
	assert.Contains(t, buf.String(), "laut")

	setupLogger(&buf, "quatsch")
	assert.Equal(t, zerolog.DebugLevel, zerolog.GlobalLevel())
}
