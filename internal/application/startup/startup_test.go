package startup

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parafia-jawornik/parafia-go/internal/infrastructure/observability/logging"
	"github.com/parafia-jawornik/parafia-go/pkg/config"
)

func TestEnsureJWTSecret_GeneratesWhenUnset(t *testing.T) {
	original := config.JWTSecret
	t.Cleanup(func() { config.JWTSecret = original })

	config.JWTSecret = ""
	require.NoError(t, ensureJWTSecret(logging.NewSilentLogger()))
	assert.NotEmpty(t, config.JWTSecret, "admin tokens must never be signed with an empty key")
	assert.Len(t, config.JWTSecret, 64)
}

func TestEnsureJWTSecret_KeepsConfiguredValue(t *testing.T) {
	original := config.JWTSecret
	t.Cleanup(func() { config.JWTSecret = original })

	config.JWTSecret = "configured-secret"
	require.NoError(t, ensureJWTSecret(logging.NewSilentLogger()))
	assert.Equal(t, "configured-secret", config.JWTSecret)
}
