package config

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"github.com/straye-as/repair-quote-api/internal/secrets"
	"go.uber.org/zap"
)

// Config holds all application configuration
type Config struct {
	App           AppConfig
	Database      DatabaseConfig
	Auth          AuthConfig
	Storage       StorageConfig
	Secrets       SecretsConfig
	Logging       LoggingConfig
	Server        ServerConfig
	CORS          CORSConfig
	Security      SecurityConfig
	RateLimit     RateLimitConfig
	Workflow      WorkflowConfig
	Notifications NotificationsConfig
}

type AppConfig struct {
	Name        string
	Environment string
	Port        int
}

type DatabaseConfig struct {
	Host            string
	Port            int
	Name            string
	User            string
	Password        string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime int
	// ConnectRetries is how many times startup retries an unreachable database
	ConnectRetries int
	// ConnectRetryDelay is the initial backoff between attempts (milliseconds)
	ConnectRetryDelay int
}

// AuthConfig holds bearer token and API key settings
type AuthConfig struct {
	// JWTSecret is the HS256 signing key shared with the identity service
	JWTSecret string
	// JWTIssuer, when set, must match the iss claim
	JWTIssuer string
	// APIKey authenticates system callers as admin
	APIKey string
}

type StorageConfig struct {
	Mode                  string
	LocalBasePath         string
	CloudConnectionString string
	CloudContainer        string
	MaxUploadSizeMB       int64
}

type SecretsConfig struct {
	// Source determines where secrets are loaded from: "environment", "vault", or "auto"
	// "auto" uses environment in development, vault in staging/production
	Source       string
	KeyVaultName string
	CacheEnabled bool
	CacheTTL     int // seconds
}

type LoggingConfig struct {
	Level  string
	Format string
}

type ServerConfig struct {
	ReadTimeout    int
	WriteTimeout   int
	RequestTimeout int
	EnableSwagger  bool
}

// CORSConfig holds CORS configuration
type CORSConfig struct {
	// AllowedOrigins is a list of allowed origins for CORS requests
	// Use "*" to allow all origins (not recommended for production)
	AllowedOrigins []string
	// AllowedMethods is a list of allowed HTTP methods
	AllowedMethods []string
	// AllowedHeaders is a list of allowed request headers
	AllowedHeaders []string
	// ExposedHeaders is a list of headers exposed to the client
	ExposedHeaders []string
	// AllowCredentials indicates whether credentials are allowed
	AllowCredentials bool
	// MaxAge is the max age (in seconds) for preflight cache
	MaxAge int
}

// SecurityConfig holds security header configuration
type SecurityConfig struct {
	// EnableHSTS enables HTTP Strict Transport Security header
	EnableHSTS bool
	// HSTSMaxAge is the max age for HSTS in seconds (default: 31536000 = 1 year)
	HSTSMaxAge int
	// HSTSIncludeSubdomains includes subdomains in HSTS
	HSTSIncludeSubdomains bool
	// HSTSPreload enables HSTS preload
	HSTSPreload bool
	// ContentSecurityPolicy sets the Content-Security-Policy header
	ContentSecurityPolicy string
	// FrameOptions sets the X-Frame-Options header (DENY, SAMEORIGIN, or empty to disable)
	FrameOptions string
	// ContentTypeNosniff enables X-Content-Type-Options: nosniff
	ContentTypeNosniff bool
	// XSSProtection sets the X-XSS-Protection header
	XSSProtection string
	// ReferrerPolicy sets the Referrer-Policy header
	ReferrerPolicy string
	// PermissionsPolicy sets the Permissions-Policy header
	PermissionsPolicy string
}

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	// Enabled enables rate limiting
	Enabled bool
	// RequestsPerMinute is the default rate limit for unauthenticated requests (per IP)
	RequestsPerMinute int
	// RequestsPerMinuteAuth is the rate limit for authenticated requests (per user)
	RequestsPerMinuteAuth int
	// WhitelistIPs is a list of IPs that bypass rate limiting
	WhitelistIPs []string
	// WhitelistPaths is a list of paths that bypass rate limiting (e.g., /health)
	WhitelistPaths []string
}

// WorkflowConfig holds settings for the quote request lifecycle engine
type WorkflowConfig struct {
	// LockTimeoutMs bounds how long an operation waits for the per-request lock
	LockTimeoutMs int
	// SweepEnabled registers the periodic estimate expiry job
	SweepEnabled bool
	// SweepCron is the cron expression (with seconds field) for the expiry sweep
	SweepCron string
	// SweepTimeout bounds one sweep run (seconds)
	SweepTimeout int
	// SweepOnStartup runs one sweep in the background when the API starts
	SweepOnStartup bool
}

// NotificationsConfig holds lifecycle event delivery settings
type NotificationsConfig struct {
	QueueSize        int
	Workers          int
	MaxRetries       int
	RetryBaseDelayMs int
	// DeliveryTimeout bounds one delivery attempt on one channel (seconds)
	DeliveryTimeout int
	Lark            LarkConfig
}

// LarkConfig configures the Lark chat channel
type LarkConfig struct {
	Enabled   bool
	AppID     string
	AppSecret string
	// ReceiveIDType is how recipient IDs are interpreted by Lark (user_id, open_id, union_id)
	ReceiveIDType string
}

// ConnectionString builds PostgreSQL connection string
func (d *DatabaseConfig) ConnectionString() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode,
	)
}

// ReadTimeoutDuration returns read timeout as duration
func (s *ServerConfig) ReadTimeoutDuration() time.Duration {
	return time.Duration(s.ReadTimeout) * time.Second
}

// WriteTimeoutDuration returns write timeout as duration
func (s *ServerConfig) WriteTimeoutDuration() time.Duration {
	return time.Duration(s.WriteTimeout) * time.Second
}

// RequestTimeoutDuration returns request timeout as duration
func (s *ServerConfig) RequestTimeoutDuration() time.Duration {
	return time.Duration(s.RequestTimeout) * time.Second
}

// ConnMaxLifetimeDuration returns connection max lifetime as duration
func (d *DatabaseConfig) ConnMaxLifetimeDuration() time.Duration {
	return time.Duration(d.ConnMaxLifetime) * time.Second
}

// ConnectRetryDelayDuration returns the initial connect backoff as duration
func (d *DatabaseConfig) ConnectRetryDelayDuration() time.Duration {
	return time.Duration(d.ConnectRetryDelay) * time.Millisecond
}

// LockTimeoutDuration returns the per-request lock acquisition timeout
func (w *WorkflowConfig) LockTimeoutDuration() time.Duration {
	return time.Duration(w.LockTimeoutMs) * time.Millisecond
}

// SweepTimeoutDuration returns how long one expiry sweep run may take
func (w *WorkflowConfig) SweepTimeoutDuration() time.Duration {
	return time.Duration(w.SweepTimeout) * time.Second
}

// RetryBaseDelayDuration returns the first backoff step for failed deliveries
func (n *NotificationsConfig) RetryBaseDelayDuration() time.Duration {
	return time.Duration(n.RetryBaseDelayMs) * time.Millisecond
}

// DeliveryTimeoutDuration bounds a single delivery attempt
func (n *NotificationsConfig) DeliveryTimeoutDuration() time.Duration {
	return time.Duration(n.DeliveryTimeout) * time.Second
}

// Load loads configuration from file and environment variables
// This is a basic load that doesn't fetch secrets from vault
// Use LoadWithSecrets for full secret resolution
func Load() (*Config, error) {
	// Load .env file if it exists (ignore error if not found)
	_ = godotenv.Load()

	v := viper.New()

	// Set defaults
	setDefaults(v)

	// Read from config file
	v.SetConfigName("config")
	v.SetConfigType("json")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// Environment variables override config file
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if cfg.Auth.APIKey == "" {
		cfg.Auth.APIKey = v.GetString("ADMIN_API_KEY")
	}
	if cfg.Auth.JWTSecret == "" {
		cfg.Auth.JWTSecret = v.GetString("JWT_SECRET")
	}
	if cfg.Notifications.Lark.AppSecret == "" {
		cfg.Notifications.Lark.AppSecret = v.GetString("LARK_APP_SECRET")
	}

	// Load Azure Key Vault name from environment if not in config
	if cfg.Secrets.KeyVaultName == "" {
		cfg.Secrets.KeyVaultName = v.GetString("AZURE_KEY_VAULT_NAME")
	}

	return &cfg, nil
}

// Validate checks settings the API cannot start without
func (c *Config) Validate() error {
	if c.Auth.JWTSecret == "" && c.Auth.APIKey == "" {
		return fmt.Errorf("auth: at least one of JWT_SECRET or ADMIN_API_KEY must be set")
	}
	if c.Workflow.LockTimeoutMs <= 0 {
		return fmt.Errorf("workflow.lockTimeoutMs must be positive")
	}
	if c.Notifications.Workers <= 0 {
		return fmt.Errorf("notifications.workers must be positive")
	}
	if c.Notifications.Lark.Enabled && (c.Notifications.Lark.AppID == "" || c.Notifications.Lark.AppSecret == "") {
		return fmt.Errorf("notifications.lark requires appId and appSecret when enabled")
	}
	return nil
}

// LoadWithSecrets loads configuration and resolves secrets from the configured source
// In development (or when secrets.source = "environment"), secrets come from env vars
// In staging/production (or when secrets.source = "vault"), secrets come from Azure Key Vault
//
// Key Vault is used when BOTH conditions are met:
// 1. USE_AZURE_KEY_VAULT environment variable is set to "true"
// 2. Environment is "staging" or "production"
func LoadWithSecrets(ctx context.Context, logger *zap.Logger) (*Config, error) {
	// First load basic config
	cfg, err := Load()
	if err != nil {
		return nil, err
	}

	useKeyVault := strings.ToLower(os.Getenv("USE_AZURE_KEY_VAULT")) == "true"
	isValidEnv := cfg.App.Environment == "staging" || cfg.App.Environment == "production"

	if !useKeyVault {
		logger.Info("USE_AZURE_KEY_VAULT not enabled, using environment variables for secrets",
			zap.String("environment", cfg.App.Environment),
		)
		return cfg, nil
	}

	if !isValidEnv {
		logger.Warn("USE_AZURE_KEY_VAULT is enabled but environment is not staging or production, using environment variables for secrets",
			zap.String("environment", cfg.App.Environment),
			zap.Bool("use_key_vault", useKeyVault),
		)
		return cfg, nil
	}

	if cfg.Secrets.KeyVaultName == "" {
		return nil, fmt.Errorf("AZURE_KEY_VAULT_NAME is required when USE_AZURE_KEY_VAULT=true")
	}

	logger.Info("Azure Key Vault enabled for secrets",
		zap.String("environment", cfg.App.Environment),
		zap.String("key_vault_name", cfg.Secrets.KeyVaultName),
	)

	provider, err := secrets.NewProvider(&secrets.ProviderConfig{
		Source:       secrets.SourceVault,
		VaultName:    cfg.Secrets.KeyVaultName,
		Environment:  cfg.App.Environment,
		CacheEnabled: cfg.Secrets.CacheEnabled,
		CacheTTL:     time.Duration(cfg.Secrets.CacheTTL) * time.Second,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize secrets provider (USE_AZURE_KEY_VAULT=true requires valid vault): %w", err)
	}

	if !provider.IsVaultEnabled() {
		return nil, fmt.Errorf("vault provider not enabled despite USE_AZURE_KEY_VAULT=true")
	}

	logger.Info("Loading secrets from Azure Key Vault")
	applySecrets(ctx, cfg, provider)

	logger.Info("Secrets loaded from vault successfully")
	return cfg, nil
}

// secretSource is the part of secrets.Provider used to fill the config
type secretSource interface {
	GetSecretOrEnv(ctx context.Context, secretName, envName string) (string, error)
}

func applySecrets(ctx context.Context, cfg *Config, provider secretSource) {
	// Host, User, Password come from vault; port and database name are environment-specific
	if host, err := provider.GetSecretOrEnv(ctx, "POSTGRES-MAIN-HOST", "DATABASE_HOST"); err == nil && host != "" {
		cfg.Database.Host = host
	}
	if defaultDB := os.Getenv("DEFAULT_DATABASE"); defaultDB != "" {
		cfg.Database.Name = defaultDB
	}
	if user, err := provider.GetSecretOrEnv(ctx, "POSTGRES-MAIN-USER", "DATABASE_USER"); err == nil && user != "" {
		cfg.Database.User = user
	}
	if password, err := provider.GetSecretOrEnv(ctx, "POSTGRES-MAIN-PASSWORD", "DATABASE_PASSWORD"); err == nil && password != "" {
		cfg.Database.Password = password
	}
	// Azure PostgreSQL requires "require"
	if sslMode := os.Getenv("DATABASE_SSLMODE"); sslMode != "" {
		cfg.Database.SSLMode = sslMode
	}

	if secret, err := provider.GetSecretOrEnv(ctx, "jwt-secret", "JWT_SECRET"); err == nil && secret != "" {
		cfg.Auth.JWTSecret = secret
	}
	if apiKey, err := provider.GetSecretOrEnv(ctx, "admin-api-key", "ADMIN_API_KEY"); err == nil && apiKey != "" {
		cfg.Auth.APIKey = apiKey
	}
	if larkSecret, err := provider.GetSecretOrEnv(ctx, "lark-app-secret", "LARK_APP_SECRET"); err == nil && larkSecret != "" {
		cfg.Notifications.Lark.AppSecret = larkSecret
	}
	if connStr, err := provider.GetSecretOrEnv(ctx, "storage-connection-string", "STORAGE_CLOUDCONNECTIONSTRING"); err == nil && connStr != "" {
		cfg.Storage.CloudConnectionString = connStr
	}
}

func setDefaults(v *viper.Viper) {
	// App defaults
	v.SetDefault("app.name", "Repair Quote API")
	v.SetDefault("app.environment", "development")
	v.SetDefault("app.port", 8080)

	// Database defaults
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.name", "repair_quote")
	v.SetDefault("database.user", "repair_quote_user")
	v.SetDefault("database.password", "repair_quote_password")
	v.SetDefault("database.sslMode", "disable")
	v.SetDefault("database.maxOpenConns", 25)
	v.SetDefault("database.maxIdleConns", 5)
	v.SetDefault("database.connMaxLifetime", 300)
	v.SetDefault("database.connectRetries", 5)
	v.SetDefault("database.connectRetryDelay", 500)

	// Auth defaults
	v.SetDefault("auth.jwtIssuer", "")

	// Secrets defaults
	v.SetDefault("secrets.source", "auto")
	v.SetDefault("secrets.cacheEnabled", true)
	v.SetDefault("secrets.cacheTTL", 300) // 5 minutes

	// Storage defaults
	v.SetDefault("storage.mode", "local")
	v.SetDefault("storage.localBasePath", "./storage")
	v.SetDefault("storage.cloudContainer", "quote-images")
	v.SetDefault("storage.maxUploadSizeMB", 10)

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")

	// Server defaults
	v.SetDefault("server.readTimeout", 30)
	v.SetDefault("server.writeTimeout", 30)
	v.SetDefault("server.requestTimeout", 60)
	v.SetDefault("server.enableSwagger", true)

	// CORS defaults - restrictive by default
	v.SetDefault("cors.allowedOrigins", []string{})
	v.SetDefault("cors.allowedMethods", []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"})
	v.SetDefault("cors.allowedHeaders", []string{"Accept", "Authorization", "Content-Type", "X-API-Key", "X-Request-ID"})
	v.SetDefault("cors.exposedHeaders", []string{"Location", "X-Request-ID", "Retry-After"})
	v.SetDefault("cors.allowCredentials", true)
	v.SetDefault("cors.maxAge", 300) // 5 minutes

	// Security header defaults - secure by default
	v.SetDefault("security.enableHSTS", false)    // enable in production with HTTPS
	v.SetDefault("security.hstsMaxAge", 31536000) // 1 year
	v.SetDefault("security.hstsIncludeSubdomains", true)
	v.SetDefault("security.hstsPreload", false)
	v.SetDefault("security.contentSecurityPolicy", "default-src 'self'")
	v.SetDefault("security.frameOptions", "DENY")
	v.SetDefault("security.contentTypeNosniff", true)
	v.SetDefault("security.xssProtection", "1; mode=block")
	v.SetDefault("security.referrerPolicy", "strict-origin-when-cross-origin")
	v.SetDefault("security.permissionsPolicy", "geolocation=(), microphone=(), camera=()")

	// Rate limiting defaults
	v.SetDefault("rateLimit.enabled", true)
	v.SetDefault("rateLimit.requestsPerMinute", 60)
	v.SetDefault("rateLimit.requestsPerMinuteAuth", 120)
	v.SetDefault("rateLimit.whitelistIPs", []string{"127.0.0.1", "::1"})
	v.SetDefault("rateLimit.whitelistPaths", []string{"/health", "/health/db", "/health/ready"})

	// Workflow defaults
	v.SetDefault("workflow.lockTimeoutMs", 2000)
	v.SetDefault("workflow.sweepEnabled", true)
	v.SetDefault("workflow.sweepCron", "0 */5 * * * *") // every 5 minutes
	v.SetDefault("workflow.sweepTimeout", 120)
	v.SetDefault("workflow.sweepOnStartup", true)

	// Notification defaults
	v.SetDefault("notifications.queueSize", 256)
	v.SetDefault("notifications.workers", 4)
	v.SetDefault("notifications.maxRetries", 5)
	v.SetDefault("notifications.retryBaseDelayMs", 200)
	v.SetDefault("notifications.deliveryTimeout", 10)
	v.SetDefault("notifications.lark.enabled", false)
	v.SetDefault("notifications.lark.receiveIdType", "user_id")
}
