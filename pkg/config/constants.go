package config

// EnvPrefix is passed to envconfig; individual fields carry explicit names so
// the prefix only matters for variables without a tag.
const EnvPrefix = "COGNITIA"

const (
	AppEnvDev  = "development"
	AppEnvProd = "production"
)

const (
	EnvAppEnv                 = "COGNITIA_APP_ENV"
	EnvPort                   = "COGNITIA_APP_PORT"
	EnvDBDSN                  = "COGNITIA_DB_DSN"
	EnvDBHost                 = "COGNITIA_DB_HOST"
	EnvDBUser                 = "COGNITIA_DB_USER"
	EnvDBName                 = "COGNITIA_DB_NAME"
	EnvRedisURL               = "COGNITIA_REDIS_URL"
	EnvJWTSecret              = "COGNITIA_JWT_SECRET"
	EnvJWTIssuer              = "COGNITIA_JWT_ISSUER"
	EnvJWTExpMins             = "COGNITIA_JWT_EXPIRATION_MINUTES"
	EnvRefreshTokenTTLMinutes = "COGNITIA_REFRESH_TOKEN_TTL_MINUTES"
	EnvVideoMasterKey         = "COGNITIA_VIDEO_MASTER_KEY"
	EnvVideoStorageDir        = "COGNITIA_VIDEO_STORAGE_DIR"
	EnvVideoMaxUploadMB       = "COGNITIA_VIDEO_MAX_UPLOAD_MB"
	EnvVideoRetentionDays     = "COGNITIA_VIDEO_RETENTION_DAYS"
	EnvCronSecret             = "COGNITIA_CRON_SECRET"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
