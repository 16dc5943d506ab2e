package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App    AppConfig
	DB     DBConfig
	Redis  RedisConfig
	Stock  StockConfig
	Events EventsConfig
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
	Env          string `envconfig:"PAWSTOCK_APP_ENV" required:"true"`
	Port         string `envconfig:"PAWSTOCK_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"PAWSTOCK_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"PAWSTOCK_LOG_WARN_STACK" default:"false"`
	AutoMigrate  bool   `envconfig:"PAWSTOCK_AUTO_MIGRATE" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"PAWSTOCK_DB_DSN"`
	Driver string `envconfig:"PAWSTOCK_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"PAWSTOCK_DB_HOST"`
	LegacyPort     int    `envconfig:"PAWSTOCK_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"PAWSTOCK_DB_USER"`
	LegacyPassword string `envconfig:"PAWSTOCK_DB_PASSWORD"`
	LegacyName     string `envconfig:"PAWSTOCK_DB_NAME"`
	LegacySSLMode  string `envconfig:"PAWSTOCK_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"PAWSTOCK_DB_MAX_OPEN_CONNS" default:"10"`
	MaxIdleConns    int           `envconfig:"PAWSTOCK_DB_MAX_IDLE_CONNS" default:"5"`
	ConnMaxLifetime time.Duration `envconfig:"PAWSTOCK_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"PAWSTOCK_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"PAWSTOCK_REDIS_URL"`
	Address      string        `envconfig:"PAWSTOCK_REDIS_ADDR"`
	Password     string        `envconfig:"PAWSTOCK_REDIS_PASSWORD"`
	DB           int           `envconfig:"PAWSTOCK_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"PAWSTOCK_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"PAWSTOCK_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"PAWSTOCK_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"PAWSTOCK_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"PAWSTOCK_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// Enabled reports whether a Redis endpoint was configured at all. The API runs
// without Redis; stock events then stay in-process.
func (r RedisConfig) Enabled() bool {
	return r.URL != "" || r.Address != ""
}

type StockConfig struct {
	// DefaultReorderLevel seeds new variants that do not specify a threshold.
	DefaultReorderLevel int `envconfig:"PAWSTOCK_STOCK_DEFAULT_REORDER_LEVEL" default:"5"`
}

type EventsConfig struct {
	StockChannel string `envconfig:"PAWSTOCK_EVENTS_STOCK_CHANNEL" default:"pawstock:events:stock"`
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
