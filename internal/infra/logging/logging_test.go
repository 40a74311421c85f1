package logging

import (
	"testing"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestSetupLevel(t *testing.T) {
	defer log.SetLevel(log.InfoLevel)

	Setup("debug")
	assert.Equal(t, log.DebugLevel, log.GetLevel())

	Setup("nonsense")
	assert.Equal(t, log.InfoLevel, log.GetLevel())
}
