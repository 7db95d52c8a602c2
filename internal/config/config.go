package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"paskoocheh/internal/locale"
)

type Config struct {
	ListenAddr string `env:"PASKOOCHEH_LISTEN_ADDR" envDefault:":8080"`
	StaticDir  string `env:"PASKOOCHEH_STATIC_DIR" envDefault:"internal/web/static"`
	Env        string `env:"PASKOOCHEH_ENV" envDefault:"development"`
	LogLevel   string `env:"PASKOOCHEH_LOG_LEVEL" envDefault:"info"`

	BackendURL string `env:"PASKOOCHEH_BACKEND_URL,required"`
	PublicURL  string `env:"PASKOOCHEH_PUBLIC_URL,required"`

	DefaultLocale   string `env:"PASKOOCHEH_DEFAULT_LOCALE" envDefault:"fa"`
	DefaultPlatform string `env:"PASKOOCHEH_DEFAULT_PLATFORM" envDefault:"android"`

	PageSize        int           `env:"PASKOOCHEH_PAGE_SIZE" envDefault:"20"`
	MaxPreviewItems int           `env:"PASKOOCHEH_MAX_PREVIEW_ITEMS" envDefault:"200"`
	LiveViews       int           `env:"PASKOOCHEH_LIVE_VIEWS" envDefault:"2048"`
	GraphQLTimeout  time.Duration `env:"PASKOOCHEH_GRAPHQL_TIMEOUT" envDefault:"15s"`

	ReferralEnabled bool `env:"PASKOOCHEH_REFERRAL_ENABLED" envDefault:"false"`

	// Redis is optional; the in-memory cache is used when unset.
	RedisURL    string        `env:"PASKOOCHEH_REDIS_URL"`
	CachePrefix string        `env:"PASKOOCHEH_CACHE_PREFIX" envDefault:"paskoocheh:"`
	CacheTTL    time.Duration `env:"PASKOOCHEH_CACHE_TTL" envDefault:"5m"`

	SessionLifetime     time.Duration `env:"PASKOOCHEH_SESSION_LIFETIME" envDefault:"720h"`
	CacheLiveNavigation string        `env:"PASKOOCHEH_CACHE_LIVE_NAV"`
	LoginRatePerMinute  int           `env:"PASKOOCHEH_LOGIN_RATE" envDefault:"10"`
	// TrustedOrigins may post forms cross-origin, e.g. a separate admin host.
	TrustedOrigins []string `env:"PASKOOCHEH_TRUSTED_ORIGINS" envSeparator:","`
}

// Load reads the process environment.
func Load() (Config, error) {
	return parse(env.Options{})
}

// LoadFrom reads configuration from an explicit variable set instead of the process environment.
func LoadFrom(vars map[string]string) (Config, error) {
	return parse(env.Options{Environment: vars})
}

func parse(opts env.Options) (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	cfg.BackendURL = strings.TrimRight(strings.TrimSpace(cfg.BackendURL), "/")
	cfg.PublicURL = strings.TrimRight(strings.TrimSpace(cfg.PublicURL), "/")
	cfg.DefaultLocale = strings.ToLower(strings.TrimSpace(cfg.DefaultLocale))
	cfg.DefaultPlatform = strings.TrimSpace(cfg.DefaultPlatform)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (c Config) Validate() error {
	var errs []error

	if err := validateBaseURL("PASKOOCHEH_BACKEND_URL", c.BackendURL); err != nil {
		errs = append(errs, err)
	}
	if err := validateBaseURL("PASKOOCHEH_PUBLIC_URL", c.PublicURL); err != nil {
		errs = append(errs, err)
	}
	if _, ok := locale.Parse(c.DefaultLocale); !ok {
		errs = append(errs, fmt.Errorf("PASKOOCHEH_DEFAULT_LOCALE %q is not a supported locale", c.DefaultLocale))
	}
	if c.DefaultPlatform == "" {
		errs = append(errs, errors.New("PASKOOCHEH_DEFAULT_PLATFORM cannot be empty"))
	}
	if c.PageSize < 1 {
		errs = append(errs, fmt.Errorf("PASKOOCHEH_PAGE_SIZE must be at least 1, got %d", c.PageSize))
	}
	if c.MaxPreviewItems < c.PageSize {
		errs = append(errs, fmt.Errorf(
			"PASKOOCHEH_MAX_PREVIEW_ITEMS (%d) must not be smaller than the page size (%d)",
			c.MaxPreviewItems,
			c.PageSize,
		))
	}
	if c.LiveViews < 1 {
		errs = append(errs, fmt.Errorf("PASKOOCHEH_LIVE_VIEWS must be at least 1, got %d", c.LiveViews))
	}
	if c.GraphQLTimeout <= 0 {
		errs = append(errs, errors.New("PASKOOCHEH_GRAPHQL_TIMEOUT must be positive"))
	}
	if c.LoginRatePerMinute < 1 {
		errs = append(errs, errors.New("PASKOOCHEH_LOGIN_RATE must be at least 1"))
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}

	return nil
}

func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

func (c Config) GraphQLEndpoint() string {
	return c.BackendURL + "/graphql/"
}

// MediaURL resolves a backend media reference. Absolute URLs are returned untouched,
// bare file paths are placed under /media/.
func (c Config) MediaURL(ref string) string {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return ""
	}

	if parsed, err := url.Parse(ref); err == nil && parsed.IsAbs() {
		return ref
	}

	ref = strings.TrimPrefix(ref, "/")
	if !strings.HasPrefix(ref, "media/") {
		ref = "media/" + ref
	}

	return c.BackendURL + "/" + ref
}

func validateBaseURL(name string, raw string) error {
	parsed, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("%s must be an absolute http(s) URL, got %q", name, raw)
	}
	if parsed.Host == "" {
		return fmt.Errorf("%s must include a host, got %q", name, raw)
	}

	return nil
}
