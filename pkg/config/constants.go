package config

// EnvPrefix is the envconfig prefix; individual fields pin explicit names so
// this stays empty.
const EnvPrefix = ""

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	EnvAppEnv   = "CARTS_APP_ENV"
	EnvDBDSN    = "CARTS_DB_DSN"
	EnvDBHost   = "CARTS_DB_HOST"
	EnvDBUser   = "CARTS_DB_USER"
	EnvDBName   = "CARTS_DB_NAME"
	EnvRedisURL = "CARTS_REDIS_URL"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
