package config

const (
	EnvPrefix = "SWIFTBASKET"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	EnvDBDSN  = "SWIFTBASKET_DB_DSN"
	EnvDBHost = "SWIFTBASKET_DB_HOST"
	EnvDBUser = "SWIFTBASKET_DB_USER"
	EnvDBName = "SWIFTBASKET_DB_NAME"
)

var requiredDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
