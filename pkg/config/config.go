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
	Service       ServiceConfig
	DB            DBConfig
	Redis         RedisConfig
	JWT           JWTConfig
	Password      PasswordConfig
	Video         VideoConfig
	Liveness      LivenessConfig
	Rewards       RewardsConfig
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
	if err := cfg.Video.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"COGNITIA_APP_ENV" required:"true"`
	Port         string `envconfig:"COGNITIA_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"COGNITIA_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"COGNITIA_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type ServiceConfig struct {
	Kind string `envconfig:"COGNITIA_SERVICE_KIND" default:"api"`
}

type DBConfig struct {
	DSN    string `envconfig:"COGNITIA_DB_DSN"`
	Driver string `envconfig:"COGNITIA_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"COGNITIA_DB_HOST"`
	LegacyPort     int    `envconfig:"COGNITIA_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"COGNITIA_DB_USER"`
	LegacyPassword string `envconfig:"COGNITIA_DB_PASSWORD"`
	LegacyName     string `envconfig:"COGNITIA_DB_NAME"`
	LegacySSLMode  string `envconfig:"COGNITIA_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"COGNITIA_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"COGNITIA_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"COGNITIA_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"COGNITIA_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"COGNITIA_REDIS_URL" required:"true"`
	Address      string        `envconfig:"COGNITIA_REDIS_ADDR"`
	Password     string        `envconfig:"COGNITIA_REDIS_PASSWORD"`
	DB           int           `envconfig:"COGNITIA_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"COGNITIA_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"COGNITIA_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"COGNITIA_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"COGNITIA_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"COGNITIA_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret                 string `envconfig:"COGNITIA_JWT_SECRET" required:"true"`
	Issuer                 string `envconfig:"COGNITIA_JWT_ISSUER" required:"true"`
	ExpirationMinutes      int    `envconfig:"COGNITIA_JWT_EXPIRATION_MINUTES" required:"true"`
	RefreshTokenTTLMinutes int    `envconfig:"COGNITIA_REFRESH_TOKEN_TTL_MINUTES" default:"43200"`
}

// RefreshTokenTTL returns the refresh token TTL configured in minutes.
func (j JWTConfig) RefreshTokenTTL() time.Duration {
	if j.RefreshTokenTTLMinutes <= 0 {
		return 0
	}
	return time.Duration(j.RefreshTokenTTLMinutes) * time.Minute
}

type AuthRateLimitConfig struct {
	LoginWindow        time.Duration `envconfig:"COGNITIA_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginEmailLimit    int           `envconfig:"COGNITIA_AUTH_RATE_LIMIT_LOGIN_EMAIL_LIMIT" default:"5"`
	LoginIPLimit       int           `envconfig:"COGNITIA_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
	RegisterWindow     time.Duration `envconfig:"COGNITIA_AUTH_RATE_LIMIT_REGISTER_WINDOW" default:"5m"`
	RegisterEmailLimit int           `envconfig:"COGNITIA_AUTH_RATE_LIMIT_REGISTER_EMAIL_LIMIT" default:"3"`
	RegisterIPLimit    int           `envconfig:"COGNITIA_AUTH_RATE_LIMIT_REGISTER_IP_LIMIT" default:"20"`
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"COGNITIA_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"COGNITIA_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"COGNITIA_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"COGNITIA_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"COGNITIA_ARGON_KEY_LEN" default:"32"`
}

// VideoConfig drives the workout-verification pipeline: upload limits,
// at-rest encryption and the retention window enforced by the sweeper.
type VideoConfig struct {
	MasterKey          string `envconfig:"COGNITIA_VIDEO_MASTER_KEY" required:"true"`
	StorageDir         string `envconfig:"COGNITIA_VIDEO_STORAGE_DIR" default:"uploads/videos"`
	MaxUploadMB        int    `envconfig:"COGNITIA_VIDEO_MAX_UPLOAD_MB" default:"10"`
	MaxDurationSeconds int    `envconfig:"COGNITIA_VIDEO_MAX_DURATION_SECONDS" default:"30"`
	RetentionDays      int    `envconfig:"COGNITIA_VIDEO_RETENTION_DAYS" default:"30"`
	CronSharedSecret   string `envconfig:"COGNITIA_CRON_SECRET" required:"true"`
}

// MaxUploadBytes returns the byte limit applied before any blob write.
func (v VideoConfig) MaxUploadBytes() int64 {
	return int64(v.MaxUploadMB) * 1024 * 1024
}

// Retention returns how long a stored clip survives before the sweeper
// removes it.
func (v VideoConfig) Retention() time.Duration {
	return time.Duration(v.RetentionDays) * 24 * time.Hour
}

func (v VideoConfig) validate() error {
	if len(v.MasterKey) < 32 {
		return fmt.Errorf("%s must be at least 32 bytes", EnvVideoMasterKey)
	}
	if v.MaxUploadMB <= 0 {
		return fmt.Errorf("%s must be positive", EnvVideoMaxUploadMB)
	}
	if v.RetentionDays <= 0 {
		return fmt.Errorf("%s must be positive", EnvVideoRetentionDays)
	}
	return nil
}

type LivenessConfig struct {
	ChallengeTTL time.Duration `envconfig:"COGNITIA_LIVENESS_CHALLENGE_TTL" default:"5m"`
}

type RewardsConfig struct {
	// PointsPerUnit is how many points convert into one unit of currency.
	PointsPerUnit  int    `envconfig:"COGNITIA_REWARDS_POINTS_PER_UNIT" default:"100"`
	Currency       string `envconfig:"COGNITIA_REWARDS_CURRENCY" default:"USD"`
	TaskPoints     int    `envconfig:"COGNITIA_REWARDS_TASK_POINTS" default:"10"`
	HabitPoints    int    `envconfig:"COGNITIA_REWARDS_HABIT_POINTS" default:"5"`
	VerifiedPoints int    `envconfig:"COGNITIA_REWARDS_VERIFIED_POINTS" default:"25"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"COGNITIA_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"COGNITIA_AUTO_MIGRATE" default:"false"`
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
