package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = "bazaar"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	EnvDBDSN  = "BAZAAR_DB_DSN"
	EnvDBHost = "BAZAAR_DB_HOST"
	EnvDBUser = "BAZAAR_DB_USER"
	EnvDBName = "BAZAAR_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	JWT          JWTConfig
	Password     PasswordConfig
	Mail         MailConfig
	Social       SocialConfig
	FeatureFlags FeatureFlagsConfig
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
	Env          string `envconfig:"BAZAAR_APP_ENV" required:"true"`
	Port         string `envconfig:"BAZAAR_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"BAZAAR_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"BAZAAR_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"BAZAAR_DB_DSN"`
	Driver string `envconfig:"BAZAAR_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"BAZAAR_DB_HOST"`
	LegacyPort     int    `envconfig:"BAZAAR_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"BAZAAR_DB_USER"`
	LegacyPassword string `envconfig:"BAZAAR_DB_PASSWORD"`
	LegacyName     string `envconfig:"BAZAAR_DB_NAME"`
	LegacySSLMode  string `envconfig:"BAZAAR_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"BAZAAR_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"BAZAAR_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"BAZAAR_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"BAZAAR_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"BAZAAR_REDIS_URL" required:"true"`
	Password     string        `envconfig:"BAZAAR_REDIS_PASSWORD"`
	DB           int           `envconfig:"BAZAAR_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"BAZAAR_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"BAZAAR_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"BAZAAR_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"BAZAAR_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"BAZAAR_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret                 string `envconfig:"BAZAAR_JWT_SECRET" required:"true"`
	Issuer                 string `envconfig:"BAZAAR_JWT_ISSUER" required:"true"`
	ExpirationMinutes      int    `envconfig:"BAZAAR_JWT_EXPIRATION_MINUTES" default:"30"`
	RefreshTokenTTLMinutes int    `envconfig:"BAZAAR_REFRESH_TOKEN_TTL_MINUTES" default:"43200"`
}

// RefreshTokenTTL returns the refresh token TTL configured in minutes.
func (j JWTConfig) RefreshTokenTTL() time.Duration {
	if j.RefreshTokenTTLMinutes <= 0 {
		return 0
	}
	return time.Duration(j.RefreshTokenTTLMinutes) * time.Minute
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"BAZAAR_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"BAZAAR_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"BAZAAR_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"BAZAAR_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"BAZAAR_ARGON_KEY_LEN" default:"32"`
}

// MailConfig points at the SendGrid mail API used for invoice delivery.
type MailConfig struct {
	APIKey      string `envconfig:"BAZAAR_SENDGRID_API_KEY"`
	BaseURL     string `envconfig:"BAZAAR_SENDGRID_BASE_URL" default:"https://api.sendgrid.com/v3"`
	DefaultFrom string `envconfig:"BAZAAR_SENDGRID_FROM_EMAIL" default:"store@example.com"`
}

// SocialConfig points at the outbound social announcement endpoint.
type SocialConfig struct {
	Endpoint    string `envconfig:"BAZAAR_SOCIAL_ENDPOINT"`
	AccessToken string `envconfig:"BAZAAR_SOCIAL_ACCESS_TOKEN"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"BAZAAR_AUTO_MIGRATE" default:"false"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	legacyValues := map[string]string{
		EnvDBHost: db.LegacyHost,
		EnvDBUser: db.LegacyUser,
		EnvDBName: db.LegacyName,
	}
	for _, env := range legacyDBEnvVars {
		if legacyValues[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.LegacyUser)
	if db.LegacyPassword != "" {
		userInfo = url.UserPassword(db.LegacyUser, db.LegacyPassword)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.LegacyHost, db.LegacyPort),
		Path:   db.LegacyName,
	}

	if db.LegacySSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.LegacySSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
