package config

// EnvPrefix is the envconfig prefix; individual fields carry explicit
// LISTPLUS_ names so the prefix stays empty.
const EnvPrefix = ""

const (
	AppEnvDev  = "development"
	AppEnvProd = "production"
)

const (
	EnvDBDSN  = "LISTPLUS_DB_DSN"
	EnvDBHost = "LISTPLUS_DB_HOST"
	EnvDBUser = "LISTPLUS_DB_USER"
	EnvDBName = "LISTPLUS_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
