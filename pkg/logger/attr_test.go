package logger_test

import (
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/DataScienceBioLab/accesskit/pkg/logger"
)

func TestError(t *testing.T) {
	t.Parallel()

	err := errors.New("boom")
	attr := logger.Error(err)
	assert.Equal(t, "error", attr.Key)
	assert.Equal(t, err, attr.Value.Any())

	assert.Equal(t, slog.Attr{}, logger.Error(nil))
}

func TestIdentityAttrs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		attr    slog.Attr
		wantKey string
		wantVal any
	}{
		{name: "user id", attr: logger.UserID("u-1"), wantKey: "user_id", wantVal: "u-1"},
		{name: "session id", attr: logger.SessionID("s-1"), wantKey: "session_id", wantVal: "s-1"},
		{name: "role", attr: logger.Role("admin"), wantKey: "role", wantVal: "admin"},
		{name: "client id", attr: logger.ClientID("c-1"), wantKey: "client_id", wantVal: "c-1"},
		{name: "component", attr: logger.Component("rbac"), wantKey: "component", wantVal: "rbac"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.wantKey, tt.attr.Key)
			assert.Equal(t, tt.wantVal, tt.attr.Value.Any())
		})
	}
}

func TestNilIdentityAttrs(t *testing.T) {
	t.Parallel()

	assert.Equal(t, slog.Attr{}, logger.UserID(nil))
	assert.Equal(t, slog.Attr{}, logger.SessionID(nil))
	assert.Equal(t, slog.Attr{}, logger.Role(nil))
	assert.Equal(t, slog.Attr{}, logger.ClientID(nil))
}

func TestGroup(t *testing.T) {
	t.Parallel()

	attr := logger.Group("request", logger.UserID("u-1"), logger.Component("session"))
	assert.Equal(t, "request", attr.Key)
	assert.Len(t, attr.Value.Group(), 2)
}
