package logger

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	t.Setenv("LOG_LEVEL", "")
	assert.Equal(t, logrus.DebugLevel, parseLevel("debug"))
	assert.Equal(t, logrus.WarnLevel, parseLevel(" WARNING "))
	assert.Equal(t, logrus.InfoLevel, parseLevel("bogus"))
	assert.Equal(t, logrus.InfoLevel, parseLevel(""))
}

func TestParseLevel_EnvFallback(t *testing.T) {
	t.Setenv("LOG_LEVEL", "error")
	assert.Equal(t, logrus.ErrorLevel, parseLevel(""))
	assert.Equal(t, logrus.TraceLevel, parseLevel("trace"))
}
