package sl_test

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/magabrotheeeer/flagship-portal/internal/lib/sl"
)

func TestErr_ReturnsCorrectAttr(t *testing.T) {
	err := errors.New("something went wrong")
	attr := sl.Err(err)

	assert.Equal(t, "error", attr.Key)
	assert.Equal(t, slog.StringValue("something went wrong"), attr.Value)
}

func TestErr_NilError(t *testing.T) {
	assert.NotPanics(t, func() {
		attr := sl.Err(nil)
		assert.Equal(t, "<nil>", attr.Value.String())
	})
}

func TestNew_ByEnv(t *testing.T) {
	for _, env := range []string{"local", "dev", "prod", "unknown"} {
		assert.NotNil(t, sl.New(env), env)
	}
	assert.False(t, sl.New("prod").Enabled(context.Background(), slog.LevelDebug))
	assert.True(t, sl.New("local").Enabled(context.Background(), slog.LevelDebug))
}
