package config

// EnvPrefix is handed to envconfig; every field carries its full name in tags.
const EnvPrefix = "CASAMAIS"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "production"
)

const (
	EnvAppEnv    = "CASAMAIS_APP_ENV"
	EnvPort      = "CASAMAIS_APP_PORT"
	EnvLogLevel  = "CASAMAIS_LOG_LEVEL"
	EnvDBDSN     = "CASAMAIS_DB_DSN"
	EnvDBHost    = "CASAMAIS_DB_HOST"
	EnvDBPort    = "CASAMAIS_DB_PORT"
	EnvDBUser    = "CASAMAIS_DB_USER"
	EnvDBPass    = "CASAMAIS_DB_PASSWORD"
	EnvDBName    = "CASAMAIS_DB_NAME"
	EnvRedisURL  = "CASAMAIS_REDIS_URL"
	EnvJWTSecret = "CASAMAIS_JWT_SECRET"
	EnvJWTIssuer = "CASAMAIS_JWT_ISSUER"
)

var discreteDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
