package logger_test

import (
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/starterkit/pkg/logger"
)

func TestError(t *testing.T) {
	err := errors.New("boom")
	attr := logger.Error(err)
	assert.Equal(t, "error", attr.Key)
	assert.Equal(t, err, attr.Value.Any())
	assert.True(t, logger.Error(nil).Equal(slog.Attr{}))
}

func TestRequestID(t *testing.T) {
	assert.Equal(t, "abc", logger.RequestID("abc").Value.String())
	assert.True(t, logger.RequestID("").Equal(slog.Attr{}))
}

func TestStringAttrs(t *testing.T) {
	assert.Equal(t, "component", logger.Component("home").Key)
	assert.Equal(t, "event", logger.Event("shown").Key)
	assert.Equal(t, "HomePage.simulateAsyncError", logger.Label("HomePage.simulateAsyncError").Value.String())
}
