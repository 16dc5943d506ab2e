package config

// EnvPrefix is the envconfig prefix shared by every PawStock binary.
const EnvPrefix = "pawstock"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	EnvAppEnv   = "PAWSTOCK_APP_ENV"
	EnvPort     = "PAWSTOCK_APP_PORT"
	EnvRedisURL = "PAWSTOCK_REDIS_URL"

	EnvDBDSN  = "PAWSTOCK_DB_DSN"
	EnvDBHost = "PAWSTOCK_DB_HOST"
	EnvDBUser = "PAWSTOCK_DB_USER"
	EnvDBName = "PAWSTOCK_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
