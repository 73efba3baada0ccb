package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	JWT          JWTConfig
	OTP          OTPConfig
	Checkout     CheckoutConfig
	Orders       OrdersConfig
	Media        MediaConfig
	FeatureFlags FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if !cfg.FeatureFlags.UseSQLite {
		if err := cfg.DB.ensureDSN(); err != nil {
			return nil, err
		}
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"SWIFTBASKET_APP_ENV" required:"true"`
	Port         string `envconfig:"SWIFTBASKET_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"SWIFTBASKET_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"SWIFTBASKET_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"SWIFTBASKET_DB_DSN"`
	Driver string `envconfig:"SWIFTBASKET_DB_DRIVER" default:"postgres"`

	Host     string `envconfig:"SWIFTBASKET_DB_HOST"`
	Port     int    `envconfig:"SWIFTBASKET_DB_PORT" default:"5432"`
	User     string `envconfig:"SWIFTBASKET_DB_USER"`
	Password string `envconfig:"SWIFTBASKET_DB_PASSWORD"`
	Name     string `envconfig:"SWIFTBASKET_DB_NAME"`
	SSLMode  string `envconfig:"SWIFTBASKET_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"SWIFTBASKET_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"SWIFTBASKET_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"SWIFTBASKET_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"SWIFTBASKET_DB_CONN_MAX_IDLE_TIME" default:"10m"`

	SQLitePath string `envconfig:"SWIFTBASKET_SQLITE_PATH" default:"swiftbasket.db"`
}

type RedisConfig struct {
	URL          string        `envconfig:"SWIFTBASKET_REDIS_URL" required:"true"`
	Address      string        `envconfig:"SWIFTBASKET_REDIS_ADDR"`
	Password     string        `envconfig:"SWIFTBASKET_REDIS_PASSWORD"`
	DB           int           `envconfig:"SWIFTBASKET_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"SWIFTBASKET_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"SWIFTBASKET_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"SWIFTBASKET_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"SWIFTBASKET_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"SWIFTBASKET_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret                 string `envconfig:"SWIFTBASKET_JWT_SECRET" required:"true"`
	Issuer                 string `envconfig:"SWIFTBASKET_JWT_ISSUER" required:"true"`
	ExpirationMinutes      int    `envconfig:"SWIFTBASKET_JWT_EXPIRATION_MINUTES" default:"60"`
	RefreshTokenTTLMinutes int    `envconfig:"SWIFTBASKET_REFRESH_TOKEN_TTL_MINUTES" default:"43200"`
}

// RefreshTokenTTL returns the refresh token TTL configured in minutes.
func (j JWTConfig) RefreshTokenTTL() time.Duration {
	if j.RefreshTokenTTLMinutes <= 0 {
		return 0
	}
	return time.Duration(j.RefreshTokenTTLMinutes) * time.Minute
}

// OTPConfig drives the simulated phone verification flow.
type OTPConfig struct {
	CodeTTL           time.Duration `envconfig:"SWIFTBASKET_OTP_CODE_TTL" default:"5m"`
	RequestWindow     time.Duration `envconfig:"SWIFTBASKET_OTP_REQUEST_WINDOW" default:"1m"`
	RequestPhoneLimit int           `envconfig:"SWIFTBASKET_OTP_REQUEST_PHONE_LIMIT" default:"5"`
	RequestIPLimit    int           `envconfig:"SWIFTBASKET_OTP_REQUEST_IP_LIMIT" default:"20"`
	RevealCodes       bool          `envconfig:"SWIFTBASKET_OTP_REVEAL_CODES" default:"false"`
}

// CheckoutConfig carries the fee schedule in paise.
type CheckoutConfig struct {
	DeliveryFeePaise        int64 `envconfig:"SWIFTBASKET_DELIVERY_FEE_PAISE" default:"2500"`
	HandlingFeePaise        int64 `envconfig:"SWIFTBASKET_HANDLING_FEE_PAISE" default:"200"`
	SmallCartFeePaise       int64 `envconfig:"SWIFTBASKET_SMALL_CART_FEE_PAISE" default:"2000"`
	SmallCartThresholdPaise int64 `envconfig:"SWIFTBASKET_SMALL_CART_THRESHOLD_PAISE" default:"10000"`
	DonationPaise           int64 `envconfig:"SWIFTBASKET_DONATION_PAISE" default:"200"`
}

type OrdersConfig struct {
	DeliveryWindow time.Duration `envconfig:"SWIFTBASKET_DELIVERY_WINDOW" default:"8m"`
}

type MediaConfig struct {
	CacheDir     string        `envconfig:"SWIFTBASKET_MEDIA_CACHE_DIR" default:".imagecache"`
	GeneratorURL string        `envconfig:"SWIFTBASKET_MEDIA_GENERATOR_URL" default:"https://image.pollinations.ai/prompt"`
	FetchTimeout time.Duration `envconfig:"SWIFTBASKET_MEDIA_FETCH_TIMEOUT" default:"30s"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"SWIFTBASKET_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"SWIFTBASKET_AUTO_MIGRATE" default:"false"`
	SeedCatalog bool `envconfig:"SWIFTBASKET_SEED_CATALOG" default:"false"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	values := map[string]string{
		EnvDBHost: db.Host,
		EnvDBUser: db.User,
		EnvDBName: db.Name,
	}
	for _, env := range requiredDBEnvVars {
		if values[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.User)
	if db.Password != "" {
		userInfo = url.UserPassword(db.User, db.Password)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.Host, db.Port),
		Path:   db.Name,
	}

	if db.SSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.SSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
