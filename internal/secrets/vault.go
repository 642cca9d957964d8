package secrets

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	"github.com/Azure/azure-sdk-for-go/sdk/security/keyvault/azsecrets"
	"go.uber.org/zap"
)

// VaultClient wraps Azure Key Vault client for secret retrieval
type VaultClient struct {
	client    *azsecrets.Client
	vaultName string
	logger    *zap.Logger
	cache     *secretCache
}

// VaultConfig holds configuration for the vault client
type VaultConfig struct {
	VaultName    string
	CacheEnabled bool
	CacheTTL     time.Duration
}

// NewVaultClient creates a new Azure Key Vault client
// Uses DefaultAzureCredential which supports:
// - Environment variables (AZURE_CLIENT_ID, AZURE_CLIENT_SECRET, AZURE_TENANT_ID)
// - Managed Identity (when running in Azure)
// - Azure CLI credentials (for local development)
func NewVaultClient(cfg *VaultConfig, logger *zap.Logger) (*VaultClient, error) {
	if cfg.VaultName == "" {
		return nil, fmt.Errorf("vault name is required")
	}

	logger.Info("Initializing Azure Key Vault client",
		zap.String("vault_name", cfg.VaultName),
		zap.Bool("cache_enabled", cfg.CacheEnabled),
	)

	cred, err := azidentity.NewDefaultAzureCredential(nil)
	if err != nil {
		logger.Error("Failed to create Azure credential", zap.Error(err))
		return nil, fmt.Errorf("failed to create Azure credential: %w", err)
	}

	vaultURL := fmt.Sprintf("https://%s.vault.azure.net/", cfg.VaultName)

	client, err := azsecrets.NewClient(vaultURL, cred, nil)
	if err != nil {
		logger.Error("Failed to create Key Vault client", zap.Error(err))
		return nil, fmt.Errorf("failed to create Key Vault client: %w", err)
	}

	var cache *secretCache
	if cfg.CacheEnabled {
		cache = newSecretCache(cfg.CacheTTL)
	}

	logger.Info("Azure Key Vault client initialized successfully",
		zap.String("vault_url", vaultURL),
	)

	return &VaultClient{
		client:    client,
		vaultName: cfg.VaultName,
		logger:    logger,
		cache:     cache,
	}, nil
}

// GetSecret retrieves a secret from Azure Key Vault
func (v *VaultClient) GetSecret(ctx context.Context, secretName string) (string, error) {
	if value, ok := v.cache.get(secretName, time.Now()); ok {
		v.logger.Debug("Secret retrieved from cache", zap.String("secret_name", secretName))
		return value, nil
	}

	v.logger.Debug("Fetching secret from Key Vault", zap.String("secret_name", secretName))

	resp, err := v.client.GetSecret(ctx, secretName, "", nil)
	if err != nil {
		v.logger.Error("Failed to get secret from Key Vault",
			zap.String("secret_name", secretName),
			zap.Error(err),
		)
		return "", fmt.Errorf("failed to get secret '%s': %w", secretName, err)
	}

	if resp.Value == nil {
		return "", fmt.Errorf("secret '%s' has no value", secretName)
	}

	value := *resp.Value
	v.cache.put(secretName, value, time.Now())
	return value, nil
}

type cachedSecret struct {
	value     string
	expiresAt time.Time
}

// secretCache is a TTL cache safe for concurrent use. A nil cache never hits.
type secretCache struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[string]cachedSecret
}

func newSecretCache(ttl time.Duration) *secretCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &secretCache{ttl: ttl, entries: make(map[string]cachedSecret)}
}

func (c *secretCache) get(name string, now time.Time) (string, bool) {
	if c == nil {
		return "", false
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[name]
	if !ok {
		return "", false
	}
	if !now.Before(entry.expiresAt) {
		delete(c.entries, name)
		return "", false
	}
	return entry.value, true
}

func (c *secretCache) put(name, value string, now time.Time) {
	if c == nil {
		return
	}
	c.mu.Lock()
	c.entries[name] = cachedSecret{value: value, expiresAt: now.Add(c.ttl)}
	c.mu.Unlock()
}
