package config

const EnvPrefix = "VEGGIE"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

const (
	PasswordAlgorithmArgon2id = "argon2id"
	PasswordAlgorithmBcrypt   = "bcrypt"
)

const (
	EnvAppEnv         = "VEGGIE_APP_ENV"
	EnvPort           = "VEGGIE_APP_PORT"
	EnvLogLevel       = "VEGGIE_LOG_LEVEL"
	EnvDBDriver       = "VEGGIE_DB_DRIVER"
	EnvDBDSN          = "VEGGIE_DB_DSN"
	EnvRedisURL       = "VEGGIE_REDIS_URL"
	EnvJWTSecret      = "VEGGIE_JWT_SECRET"
	EnvJWTIssuer      = "VEGGIE_JWT_ISSUER"
	EnvJWTExpMins     = "VEGGIE_JWT_EXPIRATION_MINUTES"
	EnvCookieName     = "VEGGIE_COOKIE_NAME"
	EnvPasswordAlgo   = "VEGGIE_PASSWORD_ALGORITHM"
	EnvAutoMigrate    = "VEGGIE_AUTO_MIGRATE"
	EnvCORSOrigins    = "VEGGIE_CORS_ALLOWED_ORIGINS"
	EnvSeedOnStartup  = "VEGGIE_SEED_ON_STARTUP"
	EnvMetricsEnabled = "VEGGIE_METRICS_ENABLED"
)
