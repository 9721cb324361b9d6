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
	Catalog       CatalogConfig
	Cart          CartConfig
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
	Env          string `envconfig:"TONTON_APP_ENV" required:"true"`
	Port         string `envconfig:"TONTON_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"TONTON_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"TONTON_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	Driver string `envconfig:"TONTON_DB_DRIVER" default:"sqlite"`
	DSN    string `envconfig:"TONTON_DB_DSN"`

	// SQLite is the single-user local mode; the path is the whole DSN.
	SQLitePath string `envconfig:"TONTON_DB_SQLITE_PATH" default:"storefront.db"`

	PostgresHost     string `envconfig:"TONTON_DB_HOST"`
	PostgresPort     int    `envconfig:"TONTON_DB_PORT" default:"5432"`
	PostgresUser     string `envconfig:"TONTON_DB_USER"`
	PostgresPassword string `envconfig:"TONTON_DB_PASSWORD"`
	PostgresName     string `envconfig:"TONTON_DB_NAME"`
	PostgresSSLMode  string `envconfig:"TONTON_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"TONTON_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"TONTON_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"TONTON_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"TONTON_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

func (db DBConfig) IsSQLite() bool {
	return strings.EqualFold(db.Driver, DriverSQLite)
}

type RedisConfig struct {
	URL          string        `envconfig:"TONTON_REDIS_URL" required:"true"`
	Address      string        `envconfig:"TONTON_REDIS_ADDR"`
	Password     string        `envconfig:"TONTON_REDIS_PASSWORD"`
	DB           int           `envconfig:"TONTON_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"TONTON_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"TONTON_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"TONTON_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"TONTON_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"TONTON_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret            string `envconfig:"TONTON_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"TONTON_JWT_ISSUER" required:"true"`
	ExpirationMinutes int    `envconfig:"TONTON_JWT_EXPIRATION_MINUTES" required:"true"`
	SessionTTLMinutes int    `envconfig:"TONTON_SESSION_TTL_MINUTES" default:"43200"`
}

// SessionTTL returns the server-side session TTL configured in minutes.
func (j JWTConfig) SessionTTL() time.Duration {
	if j.SessionTTLMinutes <= 0 {
		return 0
	}
	return time.Duration(j.SessionTTLMinutes) * time.Minute
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"TONTON_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"TONTON_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"TONTON_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"TONTON_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"TONTON_ARGON_KEY_LEN" default:"32"`
}

type CatalogConfig struct {
	FeedURL      string        `envconfig:"TONTON_CATALOG_FEED_URL" default:"https://cdn.tontonphone.dz/products.json"`
	FetchTimeout time.Duration `envconfig:"TONTON_CATALOG_FETCH_TIMEOUT" default:"10s"`
}

type CartConfig struct {
	FreeShippingOverDZD int `envconfig:"TONTON_CART_FREE_SHIPPING_OVER_DZD" default:"10000"`
	ShippingFlatDZD     int `envconfig:"TONTON_CART_SHIPPING_FLAT_DZD" default:"1000"`
}

type AuthRateLimitConfig struct {
	LoginWindow        time.Duration `envconfig:"TONTON_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginEmailLimit    int           `envconfig:"TONTON_AUTH_RATE_LIMIT_LOGIN_EMAIL_LIMIT" default:"5"`
	LoginIPLimit       int           `envconfig:"TONTON_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
	RegisterWindow     time.Duration `envconfig:"TONTON_AUTH_RATE_LIMIT_REGISTER_WINDOW" default:"5m"`
	RegisterEmailLimit int           `envconfig:"TONTON_AUTH_RATE_LIMIT_REGISTER_EMAIL_LIMIT" default:"3"`
	RegisterIPLimit    int           `envconfig:"TONTON_AUTH_RATE_LIMIT_REGISTER_IP_LIMIT" default:"20"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"TONTON_AUTO_MIGRATE" default:"false"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	if db.IsSQLite() {
		db.DSN = db.SQLitePath
		return nil
	}

	missing := []string{}
	postgresValues := map[string]string{
		EnvDBHost: db.PostgresHost,
		EnvDBUser: db.PostgresUser,
		EnvDBName: db.PostgresName,
	}
	for _, env := range postgresDBEnvVars {
		if postgresValues[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.PostgresUser)
	if db.PostgresPassword != "" {
		userInfo = url.UserPassword(db.PostgresUser, db.PostgresPassword)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.PostgresHost, db.PostgresPort),
		Path:   db.PostgresName,
	}

	if db.PostgresSSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.PostgresSSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
