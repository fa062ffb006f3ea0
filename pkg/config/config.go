package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App           AppConfig
	DB            DBConfig
	Redis         RedisConfig
	JWT           JWTConfig
	Cookie        CookieConfig
	Password      PasswordConfig
	AuthRateLimit AuthRateLimitConfig
	FeatureFlags  FeatureFlagsConfig
	Metrics       MetricsConfig
	CORS          CORSConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.normalize(); err != nil {
		return nil, err
	}
	if err := cfg.Password.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env             string        `envconfig:"VEGGIE_APP_ENV" default:"dev"`
	Port            string        `envconfig:"VEGGIE_APP_PORT" default:"8080"`
	LogLevel        string        `envconfig:"VEGGIE_LOG_LEVEL" default:"info"`
	LogWarnStack    bool          `envconfig:"VEGGIE_LOG_WARN_STACK" default:"false"`
	LogFile         string        `envconfig:"VEGGIE_LOG_FILE"`
	LogFileMaxMB    int           `envconfig:"VEGGIE_LOG_FILE_MAX_MB" default:"100"`
	LogFileBackups  int           `envconfig:"VEGGIE_LOG_FILE_BACKUPS" default:"5"`
	ShutdownTimeout time.Duration `envconfig:"VEGGIE_SHUTDOWN_TIMEOUT" default:"15s"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	Driver string `envconfig:"VEGGIE_DB_DRIVER" default:"sqlite"`
	DSN    string `envconfig:"VEGGIE_DB_DSN" default:"veggie-shop.db"`

	MaxOpenConns    int           `envconfig:"VEGGIE_DB_MAX_OPEN_CONNS" default:"10"`
	MaxIdleConns    int           `envconfig:"VEGGIE_DB_MAX_IDLE_CONNS" default:"5"`
	ConnMaxLifetime time.Duration `envconfig:"VEGGIE_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"VEGGIE_DB_CONN_MAX_IDLE_TIME" default:"10m"`
	BusyTimeout     time.Duration `envconfig:"VEGGIE_DB_BUSY_TIMEOUT" default:"5s"`
}

// IsSQLite reports whether the record store is the embedded SQLite file.
func (db DBConfig) IsSQLite() bool {
	return db.Driver == DriverSQLite
}

type RedisConfig struct {
	URL          string        `envconfig:"VEGGIE_REDIS_URL"`
	Address      string        `envconfig:"VEGGIE_REDIS_ADDR"`
	Password     string        `envconfig:"VEGGIE_REDIS_PASSWORD"`
	DB           int           `envconfig:"VEGGIE_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"VEGGIE_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"VEGGIE_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"VEGGIE_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"VEGGIE_REDIS_READ_TIMEOUT" default:"3s"`
	WriteTimeout time.Duration `envconfig:"VEGGIE_REDIS_WRITE_TIMEOUT" default:"3s"`
}

// Enabled reports whether a Redis endpoint was configured at all.
func (r RedisConfig) Enabled() bool {
	return strings.TrimSpace(r.URL) != "" || strings.TrimSpace(r.Address) != ""
}

type JWTConfig struct {
	Secret            string `envconfig:"VEGGIE_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"VEGGIE_JWT_ISSUER" default:"veggie-shop"`
	ExpirationMinutes int    `envconfig:"VEGGIE_JWT_EXPIRATION_MINUTES" default:"10080"`
}

// TTL returns the token lifetime.
func (j JWTConfig) TTL() time.Duration {
	if j.ExpirationMinutes <= 0 {
		return 0
	}
	return time.Duration(j.ExpirationMinutes) * time.Minute
}

type CookieConfig struct {
	Name   string `envconfig:"VEGGIE_COOKIE_NAME" default:"veggie-auth-token"`
	Secure bool   `envconfig:"VEGGIE_COOKIE_SECURE" default:"false"`
	Domain string `envconfig:"VEGGIE_COOKIE_DOMAIN"`
}

type PasswordConfig struct {
	Algorithm        string `envconfig:"VEGGIE_PASSWORD_ALGORITHM" default:"argon2id"`
	ArgonMemoryKB    int    `envconfig:"VEGGIE_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int    `envconfig:"VEGGIE_ARGON_TIME" default:"3"`
	ArgonParallelism int    `envconfig:"VEGGIE_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int    `envconfig:"VEGGIE_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int    `envconfig:"VEGGIE_ARGON_KEY_LEN" default:"32"`
	BcryptCost       int    `envconfig:"VEGGIE_BCRYPT_COST" default:"12"`
}

func (p PasswordConfig) validate() error {
	switch strings.ToLower(strings.TrimSpace(p.Algorithm)) {
	case PasswordAlgorithmArgon2id, PasswordAlgorithmBcrypt:
		return nil
	}
	return fmt.Errorf("unsupported password algorithm %q", p.Algorithm)
}

type AuthRateLimitConfig struct {
	LoginWindow        time.Duration `envconfig:"VEGGIE_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginEmailLimit    int           `envconfig:"VEGGIE_AUTH_RATE_LIMIT_LOGIN_EMAIL_LIMIT" default:"5"`
	LoginIPLimit       int           `envconfig:"VEGGIE_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
	RegisterWindow     time.Duration `envconfig:"VEGGIE_AUTH_RATE_LIMIT_REGISTER_WINDOW" default:"5m"`
	RegisterEmailLimit int           `envconfig:"VEGGIE_AUTH_RATE_LIMIT_REGISTER_EMAIL_LIMIT" default:"3"`
	RegisterIPLimit    int           `envconfig:"VEGGIE_AUTH_RATE_LIMIT_REGISTER_IP_LIMIT" default:"20"`
}

type FeatureFlagsConfig struct {
	AutoMigrate   bool `envconfig:"VEGGIE_AUTO_MIGRATE" default:"true"`
	SeedOnStartup bool `envconfig:"VEGGIE_SEED_ON_STARTUP" default:"true"`
	InitEndpoint  bool `envconfig:"VEGGIE_INIT_ENDPOINT" default:"true"`
}

type MetricsConfig struct {
	Enabled bool   `envconfig:"VEGGIE_METRICS_ENABLED" default:"true"`
	Path    string `envconfig:"VEGGIE_METRICS_PATH" default:"/metrics"`
}

type CORSConfig struct {
	AllowedOrigins []string `envconfig:"VEGGIE_CORS_ALLOWED_ORIGINS" default:"http://localhost:3000"`
}

func (db *DBConfig) normalize() error {
	db.Driver = strings.ToLower(strings.TrimSpace(db.Driver))
	switch db.Driver {
	case DriverSQLite, DriverPostgres:
	default:
		return fmt.Errorf("%s must be one of %s, %s", EnvDBDriver, DriverSQLite, DriverPostgres)
	}

	if strings.TrimSpace(db.DSN) == "" {
		return fmt.Errorf("%s is required", EnvDBDSN)
	}

	if db.IsSQLite() {
		db.DSN = SQLiteDSN(db.DSN, db.BusyTimeout)
	}
	return nil
}

// SQLiteDSN appends the connection pragmas the store relies on (foreign keys,
// WAL journaling, busy timeout) unless the caller already set them.
func SQLiteDSN(dsn string, busyTimeout time.Duration) string {
	params := []string{}
	if !strings.Contains(dsn, "_foreign_keys") && !strings.Contains(dsn, "_fk") {
		params = append(params, "_foreign_keys=on")
	}
	if !strings.Contains(dsn, "mode=memory") && !strings.Contains(dsn, "_journal_mode") {
		params = append(params, "_journal_mode=WAL")
	}
	if busyTimeout > 0 && !strings.Contains(dsn, "_busy_timeout") {
		params = append(params, fmt.Sprintf("_busy_timeout=%d", busyTimeout.Milliseconds()))
	}
	if len(params) == 0 {
		return dsn
	}

	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	if !strings.HasPrefix(dsn, "file:") {
		dsn = "file:" + dsn
	}
	return dsn + sep + strings.Join(params, "&")
}
