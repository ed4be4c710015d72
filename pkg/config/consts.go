package config

const (
	// EnvPrefix is passed to envconfig; all variables carry the BREWHAUS_ prefix.
	EnvPrefix = "BREWHAUS"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	EnvAppEnv = "BREWHAUS_APP_ENV"
	EnvPort   = "BREWHAUS_APP_PORT"
	EnvDBDSN  = "BREWHAUS_DB_DSN"
	EnvDBHost = "BREWHAUS_DB_HOST"
	EnvDBUser = "BREWHAUS_DB_USER"
	EnvDBName = "BREWHAUS_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
