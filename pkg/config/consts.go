package config

// EnvPrefix scopes every environment variable consumed by the service.
const EnvPrefix = "DIVELINK"

const (
	AppEnvDev  = "development"
	AppEnvProd = "production"
)

// Environment variable names referenced outside struct tags (tests, error
// messages).
const (
	EnvAppEnv                 = "DIVELINK_APP_ENV"
	EnvPort                   = "DIVELINK_APP_PORT"
	EnvDBDSN                  = "DIVELINK_DB_DSN"
	EnvDBHost                 = "DIVELINK_DB_HOST"
	EnvDBUser                 = "DIVELINK_DB_USER"
	EnvDBName                 = "DIVELINK_DB_NAME"
	EnvRedisURL               = "DIVELINK_REDIS_URL"
	EnvJWTSecret              = "DIVELINK_JWT_SECRET"
	EnvJWTIssuer              = "DIVELINK_JWT_ISSUER"
	EnvJWTExpMins             = "DIVELINK_JWT_EXPIRATION_MINUTES"
	EnvRefreshTokenTTLMinutes = "DIVELINK_REFRESH_TOKEN_TTL_MINUTES"
	EnvFirebaseProjectID      = "DIVELINK_FB_PROJECT_ID"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
