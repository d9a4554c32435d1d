package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	Currency     CurrencyConfig
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
	Env          string   `envconfig:"GROCERLY_APP_ENV" required:"true"`
	Port         string   `envconfig:"GROCERLY_APP_PORT" default:"3000"`
	LogLevel     string   `envconfig:"GROCERLY_LOG_LEVEL" default:"info"`
	LogWarnStack bool     `envconfig:"GROCERLY_LOG_WARN_STACK" default:"false"`
	CORSOrigins  []string `envconfig:"GROCERLY_CORS_ORIGINS" default:"http://localhost:3000"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"GROCERLY_DB_DSN"`
	Driver string `envconfig:"GROCERLY_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"GROCERLY_DB_HOST"`
	LegacyPort     int    `envconfig:"GROCERLY_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"GROCERLY_DB_USER"`
	LegacyPassword string `envconfig:"GROCERLY_DB_PASSWORD"`
	LegacyName     string `envconfig:"GROCERLY_DB_NAME"`
	LegacySSLMode  string `envconfig:"GROCERLY_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"GROCERLY_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"GROCERLY_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"GROCERLY_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"GROCERLY_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"GROCERLY_REDIS_URL"`
	Address      string        `envconfig:"GROCERLY_REDIS_ADDR"`
	Password     string        `envconfig:"GROCERLY_REDIS_PASSWORD"`
	DB           int           `envconfig:"GROCERLY_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"GROCERLY_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"GROCERLY_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"GROCERLY_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"GROCERLY_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"GROCERLY_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// Enabled reports whether a redis endpoint was configured at all. The API
// runs without one; idempotency caching is simply skipped.
func (r RedisConfig) Enabled() bool {
	return r.URL != "" || r.Address != ""
}

type CurrencyConfig struct {
	Symbol string `envconfig:"GROCERLY_CURRENCY_SYMBOL" default:"$"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"GROCERLY_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"GROCERLY_AUTO_MIGRATE" default:"false"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}
	if strings.EqualFold(db.Driver, DriverSQLite) {
		db.DSN = "file:grocerly.db?cache=shared"
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
