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
	AuthRateLimit AuthRateLimitConfig
	FeatureFlags  FeatureFlagsConfig
	Firebase      FirebaseConfig
	Push          PushConfig
	PubSub        PubSubConfig
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
	Env          string `envconfig:"DIVELINK_APP_ENV" required:"true"`
	Port         string `envconfig:"DIVELINK_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"DIVELINK_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"DIVELINK_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"DIVELINK_DB_DSN"`
	Driver string `envconfig:"DIVELINK_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"DIVELINK_DB_HOST"`
	LegacyPort     int    `envconfig:"DIVELINK_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"DIVELINK_DB_USER"`
	LegacyPassword string `envconfig:"DIVELINK_DB_PASSWORD"`
	LegacyName     string `envconfig:"DIVELINK_DB_NAME"`
	LegacySSLMode  string `envconfig:"DIVELINK_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"DIVELINK_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"DIVELINK_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"DIVELINK_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"DIVELINK_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"DIVELINK_REDIS_URL" required:"true"`
	Address      string        `envconfig:"DIVELINK_REDIS_ADDR"`
	Password     string        `envconfig:"DIVELINK_REDIS_PASSWORD"`
	DB           int           `envconfig:"DIVELINK_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"DIVELINK_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"DIVELINK_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"DIVELINK_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"DIVELINK_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"DIVELINK_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret                 string `envconfig:"DIVELINK_JWT_SECRET" required:"true"`
	Issuer                 string `envconfig:"DIVELINK_JWT_ISSUER" required:"true"`
	ExpirationMinutes      int    `envconfig:"DIVELINK_JWT_EXPIRATION_MINUTES" required:"true"`
	RefreshTokenTTLMinutes int    `envconfig:"DIVELINK_REFRESH_TOKEN_TTL_MINUTES" default:"7200"`
}

// RefreshTokenTTL returns the refresh token TTL configured in minutes.
func (j JWTConfig) RefreshTokenTTL() time.Duration {
	if j.RefreshTokenTTLMinutes <= 0 {
		return 0
	}
	return time.Duration(j.RefreshTokenTTLMinutes) * time.Minute
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"DIVELINK_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"DIVELINK_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"DIVELINK_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"DIVELINK_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"DIVELINK_ARGON_KEY_LEN" default:"32"`
}

type AuthRateLimitConfig struct {
	LoginWindow     time.Duration `envconfig:"DIVELINK_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginEmailLimit int           `envconfig:"DIVELINK_AUTH_RATE_LIMIT_LOGIN_EMAIL_LIMIT" default:"5"`
	LoginIPLimit    int           `envconfig:"DIVELINK_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"DIVELINK_AUTO_MIGRATE" default:"false"`
}

// FirebaseConfig covers the Firebase project backing push delivery and the
// app-user identity provider.
type FirebaseConfig struct {
	ProjectID              string `envconfig:"DIVELINK_FB_PROJECT_ID" required:"true"`
	CredentialsJSON        string `envconfig:"DIVELINK_FB_CREDENTIALS_JSON"`
	ApplicationCredentials string `envconfig:"DIVELINK_GOOGLE_APPLICATION_CREDENTIALS"`
}

type PushConfig struct {
	BroadcastTopic string `envconfig:"DIVELINK_PUSH_BROADCAST_TOPIC" default:"all_users"`
}

type PubSubConfig struct {
	AdminEventsTopic string `envconfig:"DIVELINK_PUBSUB_ADMIN_EVENTS_TOPIC"`
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
