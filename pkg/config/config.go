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
	Service      ServiceConfig
	DB           DBConfig
	Redis        RedisConfig
	Worker       WorkerConfig
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
	Env          string `envconfig:"CARTS_APP_ENV" required:"true"`
	LogLevel     string `envconfig:"CARTS_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"CARTS_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type ServiceConfig struct {
	Kind string `envconfig:"CARTS_SERVICE_KIND" default:"cart-worker"`
}

type DBConfig struct {
	DSN    string `envconfig:"CARTS_DB_DSN"`
	Driver string `envconfig:"CARTS_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"CARTS_DB_HOST"`
	LegacyPort     int    `envconfig:"CARTS_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"CARTS_DB_USER"`
	LegacyPassword string `envconfig:"CARTS_DB_PASSWORD"`
	LegacyName     string `envconfig:"CARTS_DB_NAME"`
	LegacySSLMode  string `envconfig:"CARTS_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"CARTS_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"CARTS_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"CARTS_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"CARTS_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"CARTS_REDIS_URL" required:"true"`
	Address      string        `envconfig:"CARTS_REDIS_ADDR"`
	Password     string        `envconfig:"CARTS_REDIS_PASSWORD"`
	DB           int           `envconfig:"CARTS_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"CARTS_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"CARTS_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"CARTS_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"CARTS_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"CARTS_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// WorkerConfig tunes the abandoned-cart cleanup worker.
type WorkerConfig struct {
	OpsPort          string        `envconfig:"CARTS_WORKER_OPS_PORT" default:"9090"`
	Interval         time.Duration `envconfig:"CARTS_WORKER_INTERVAL" default:"1h"`
	AbandonedCartTTL time.Duration `envconfig:"CARTS_WORKER_ABANDONED_TTL" default:"72h"`
	CleanupBatchSize int           `envconfig:"CARTS_WORKER_CLEANUP_BATCH_SIZE" default:"500"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"CARTS_AUTO_MIGRATE" default:"false"`
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
