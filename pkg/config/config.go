package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App           AppConfig
	DB            DBConfig
	Redis         RedisConfig
	JWT           JWTConfig
	Password      PasswordConfig
	AuthRateLimit AuthRateLimitConfig
	FeatureFlags  FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"CASAMAIS_APP_ENV" required:"true"`
	Port         string `envconfig:"CASAMAIS_APP_PORT" default:"3000"`
	LogLevel     string `envconfig:"CASAMAIS_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"CASAMAIS_LOG_WARN_STACK" default:"false"`
	LogFormat    string `envconfig:"CASAMAIS_LOG_FORMAT" default:"json"`

	CORSAllowedOrigins []string `envconfig:"CASAMAIS_CORS_ALLOWED_ORIGINS"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"CASAMAIS_DB_DSN"`
	Driver string `envconfig:"CASAMAIS_DB_DRIVER" default:"postgres"`

	Host     string `envconfig:"CASAMAIS_DB_HOST"`
	Port     int    `envconfig:"CASAMAIS_DB_PORT" default:"5432"`
	User     string `envconfig:"CASAMAIS_DB_USER"`
	Password string `envconfig:"CASAMAIS_DB_PASSWORD"`
	Name     string `envconfig:"CASAMAIS_DB_NAME"`
	SSLMode  string `envconfig:"CASAMAIS_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"CASAMAIS_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"CASAMAIS_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"CASAMAIS_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"CASAMAIS_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

// RedisConfig is optional: with neither URL nor address set, sessions and
// login throttling are disabled.
type RedisConfig struct {
	URL          string        `envconfig:"CASAMAIS_REDIS_URL"`
	Address      string        `envconfig:"CASAMAIS_REDIS_ADDR"`
	Password     string        `envconfig:"CASAMAIS_REDIS_PASSWORD"`
	DB           int           `envconfig:"CASAMAIS_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"CASAMAIS_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"CASAMAIS_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"CASAMAIS_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"CASAMAIS_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"CASAMAIS_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// Enabled reports whether a Redis endpoint was configured.
func (r RedisConfig) Enabled() bool {
	return strings.TrimSpace(r.URL) != "" || strings.TrimSpace(r.Address) != ""
}

type JWTConfig struct {
	Secret            string `envconfig:"CASAMAIS_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"CASAMAIS_JWT_ISSUER" default:"casamais"`
	ExpirationMinutes int    `envconfig:"CASAMAIS_JWT_EXPIRATION_MINUTES" default:"480"`
}

// TTL returns the access token lifetime.
func (j JWTConfig) TTL() time.Duration {
	if j.ExpirationMinutes <= 0 {
		return 0
	}
	return time.Duration(j.ExpirationMinutes) * time.Minute
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"CASAMAIS_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"CASAMAIS_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"CASAMAIS_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"CASAMAIS_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"CASAMAIS_ARGON_KEY_LEN" default:"32"`
}

type AuthRateLimitConfig struct {
	LoginWindow     time.Duration `envconfig:"CASAMAIS_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginEmailLimit int           `envconfig:"CASAMAIS_AUTH_RATE_LIMIT_LOGIN_EMAIL_LIMIT" default:"5"`
	LoginIPLimit    int           `envconfig:"CASAMAIS_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"CASAMAIS_AUTO_MIGRATE" default:"false"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	values := map[string]string{
		EnvDBHost: db.Host,
		EnvDBUser: db.User,
		EnvDBName: db.Name,
	}
	for _, env := range discreteDBEnvVars {
		if values[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.User)
	if db.Password != "" {
		userInfo = url.UserPassword(db.User, db.Password)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.Host, db.Port),
		Path:   db.Name,
	}

	if db.SSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.SSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
