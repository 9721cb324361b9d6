package config

const (
	EnvPrefix = "TONTON"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"

	EnvAppEnv     = "TONTON_APP_ENV"
	EnvPort       = "TONTON_APP_PORT"
	EnvDBDriver   = "TONTON_DB_DRIVER"
	EnvDBDSN      = "TONTON_DB_DSN"
	EnvDBHost     = "TONTON_DB_HOST"
	EnvDBUser     = "TONTON_DB_USER"
	EnvDBName     = "TONTON_DB_NAME"
	EnvRedisURL   = "TONTON_REDIS_URL"
	EnvJWTSecret  = "TONTON_JWT_SECRET"
	EnvJWTIssuer  = "TONTON_JWT_ISSUER"
	EnvJWTExpMins = "TONTON_JWT_EXPIRATION_MINUTES"
)

var postgresDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
