package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/joho/godotenv"
)

const (
	DefaultPort          = 5000
	DefaultSiteURL       = "https://dailyupdateshub.in"
	DefaultUploadDir     = "./blogimages"
	DefaultMaxUploadSize = "5MB"
	DefaultTokenTTL      = 30 * 24 * time.Hour
	DefaultRateLimit     = 100
	RateLimitWindow      = 15 * time.Minute
)

type Config struct {
	Port          int
	DatabaseURL   string
	DatabaseType  string
	JWTSecret     string
	TokenTTL      time.Duration
	IPHashSalt    string
	ClientURL     string
	SiteURL       string
	PublicURL     string
	UploadDir     string
	MaxUploadSize int64
	RateLimit     int
	TrustProxy    bool
}

// LoadEnvFile reads a .env file into the process environment without
// overriding variables that are already set. A missing file is not an error.
func LoadEnvFile(path string) error {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

// ParseFlags validates flags and fills unset values from the environment
func ParseFlags(args []string) (Config, error) {
	var cfg Config
	var tokenTTL, maxUpload string
	rateLimit := -1

	fs := flag.NewFlagSet("updateshub", flag.ContinueOnError)

	// Network config (can be CLI args or env)
	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL")
	fs.StringVar(&cfg.DatabaseType, "t", "", "Database type (sqlite or postgres)")
	fs.StringVar(&cfg.ClientURL, "client-url", "", "Frontend origin allowed by CORS")
	fs.StringVar(&cfg.SiteURL, "site-url", "", "Public site URL used in the sitemap")
	fs.StringVar(&cfg.PublicURL, "public-url", "", "Base URL for uploaded images")
	fs.StringVar(&cfg.UploadDir, "upload-dir", "", "Directory for uploaded images")
	fs.StringVar(&maxUpload, "max-upload", "", "Maximum upload size per file (e.g. 5MB)")
	fs.StringVar(&tokenTTL, "token-ttl", "", "Auth token lifetime (e.g. 720h)")
	fs.IntVar(&rateLimit, "rate-limit", -1, "Requests per 15 minutes per IP on /api (0 disables)")
	fs.BoolVar(&cfg.TrustProxy, "trust-proxy", false, "Take the client IP from X-Forwarded-For / X-Real-IP")

	// Secrets (prefer env variables, but allow CLI for dev)
	fs.StringVar(&cfg.JWTSecret, "jwt-secret", "", "Token signing secret (prefer env)")
	fs.StringVar(&cfg.IPHashSalt, "ip-salt", "", "Salt for hashing client IPs (prefer env)")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	// Fall back to environment variables
	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else {
			cfg.Port = DefaultPort
		}
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.DatabaseURL == "" {
		return Config{}, errors.New("database URL required (use -d or DATABASE_URL env)")
	}

	if cfg.DatabaseType == "" {
		cfg.DatabaseType = os.Getenv("DATABASE_TYPE")
		if cfg.DatabaseType == "" {
			cfg.DatabaseType = "sqlite"
		}
	}
	if cfg.DatabaseType != "sqlite" && cfg.DatabaseType != "postgres" {
		return Config{}, fmt.Errorf("unsupported database type %q (want sqlite or postgres)", cfg.DatabaseType)
	}

	cfg.ClientURL = stringOrEnv(cfg.ClientURL, "CLIENT_URL", "")
	cfg.SiteURL = stringOrEnv(cfg.SiteURL, "SITE_URL", DefaultSiteURL)
	cfg.PublicURL = stringOrEnv(cfg.PublicURL, "PUBLIC_URL", "http://localhost:"+strconv.Itoa(cfg.Port))
	cfg.UploadDir = stringOrEnv(cfg.UploadDir, "UPLOAD_DIR", DefaultUploadDir)

	size, err := humanize.ParseBytes(stringOrEnv(maxUpload, "MAX_UPLOAD_SIZE", DefaultMaxUploadSize))
	if err != nil {
		return Config{}, fmt.Errorf("invalid MAX_UPLOAD_SIZE: %w", err)
	}
	cfg.MaxUploadSize = int64(size)

	cfg.TokenTTL = DefaultTokenTTL
	if ttl := stringOrEnv(tokenTTL, "TOKEN_TTL", ""); ttl != "" {
		d, err := time.ParseDuration(ttl)
		if err != nil || d <= 0 {
			return Config{}, errors.New("invalid TOKEN_TTL (want a positive duration such as 720h)")
		}
		cfg.TokenTTL = d
	}

	cfg.RateLimit = rateLimit
	if cfg.RateLimit < 0 {
		cfg.RateLimit = DefaultRateLimit
		if rl := os.Getenv("RATE_LIMIT"); rl != "" {
			n, err := strconv.Atoi(rl)
			if err != nil || n < 0 {
				return Config{}, errors.New("invalid RATE_LIMIT env variable")
			}
			cfg.RateLimit = n
		}
	}

	if !cfg.TrustProxy {
		if tp := os.Getenv("TRUST_PROXY"); tp != "" {
			trust, err := strconv.ParseBool(tp)
			if err != nil {
				return Config{}, errors.New("invalid TRUST_PROXY env variable")
			}
			cfg.TrustProxy = trust
		}
	}

	// Secrets - MUST be provided
	if cfg.JWTSecret == "" {
		cfg.JWTSecret = os.Getenv("JWT_SECRET")
	}
	if cfg.JWTSecret == "" {
		return Config{}, errors.New("JWT_SECRET required")
	}

	if cfg.IPHashSalt == "" {
		cfg.IPHashSalt = os.Getenv("IP_HASH_SALT")
	}
	if cfg.IPHashSalt == "" {
		return Config{}, errors.New("IP_HASH_SALT required")
	}

	return cfg, nil
}

func stringOrEnv(value, env, def string) string {
	if value != "" {
		return value
	}
	if v := os.Getenv(env); v != "" {
		return v
	}
	return def
}
