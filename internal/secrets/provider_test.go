package secrets_test

import (
	"context"
	"testing"

	"github.com/straye-as/repair-quote-api/internal/secrets"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestResolveSource(t *testing.T) {
	assert.Equal(t, secrets.SourceEnvironment, secrets.ResolveSource("development"))
	assert.Equal(t, secrets.SourceEnvironment, secrets.ResolveSource(""))
	assert.Equal(t, secrets.SourceVault, secrets.ResolveSource("staging"))
	assert.Equal(t, secrets.SourceVault, secrets.ResolveSource("production"))
}

func TestProvider_EnvironmentSource(t *testing.T) {
	provider, err := secrets.NewProvider(&secrets.ProviderConfig{
		Source:      secrets.SourceAuto,
		Environment: "development",
	}, zap.NewNop())
	require.NoError(t, err)
	assert.False(t, provider.IsVaultEnabled())

	ctx := context.Background()

	t.Run("missing variable is an error", func(t *testing.T) {
		_, err := provider.GetSecret(ctx, "REPAIR_QUOTE_TEST_MISSING")
		assert.Error(t, err)
	})

	t.Run("env override wins", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "from-env")
		value, err := provider.GetSecretOrEnv(ctx, "jwt-secret", "JWT_SECRET")
		require.NoError(t, err)
		assert.Equal(t, "from-env", value)
	})

	t.Run("falls back to the named secret", func(t *testing.T) {
		t.Setenv("REPAIR_QUOTE_TEST_SECRET", "value")
		value, err := provider.GetSecretOrEnv(ctx, "REPAIR_QUOTE_TEST_SECRET", "REPAIR_QUOTE_TEST_UNSET")
		require.NoError(t, err)
		assert.Equal(t, "value", value)
	})
}

func TestProvider_VaultRequiresName(t *testing.T) {
	_, err := secrets.NewProvider(&secrets.ProviderConfig{
		Source:      secrets.SourceVault,
		Environment: "production",
	}, zap.NewNop())
	assert.Error(t, err)
}
