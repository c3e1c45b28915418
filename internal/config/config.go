package config

import (
	"fmt"
	"os"
	"time"

	_ "time/tzdata" // Reel timezone must resolve on hosts without zoneinfo.

	"gopkg.in/yaml.v3"

	"scout/internal/reel"
)

// ---------------------------------------------------------------------------
// Configuration structs
// ---------------------------------------------------------------------------

// Config is the top-level configuration shared by scout-reels, scout-server
// and scout-cli.
type Config struct {
	User    string  `yaml:"user"`
	Storage Storage `yaml:"storage"`
	Server  Server  `yaml:"server"`
	Alpaca  Alpaca  `yaml:"alpaca"`
	Finnhub Finnhub `yaml:"finnhub"`
	GenAI   GenAI   `yaml:"genai"`
	Logging Logging `yaml:"logging"`
	Reel    Reel    `yaml:"reel"`
}

// Storage holds paths for data persistence.
type Storage struct {
	DataDir    string `yaml:"data_dir"`
	SQLitePath string `yaml:"sqlite_path"`
	// Backend selects the key-value store: "sqlite", "file" or "memory".
	Backend   string `yaml:"backend"`
	StatePath string `yaml:"state_path"` // file backend only
}

// Server holds network listener configuration.
type Server struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
	// Addr is the base URL scout-cli talks to.
	Addr string `yaml:"addr"`

	RateLimitPerMin int           `yaml:"rate_limit_per_min"` // per client IP
	RateBurst       int           `yaml:"rate_burst"`
	RequestTimeout  time.Duration `yaml:"request_timeout"`
}

// Alpaca holds credentials and endpoints for the Alpaca market data API.
type Alpaca struct {
	APIKey    string `yaml:"api_key"`
	APISecret string `yaml:"api_secret"`
	DataURL   string `yaml:"data_url"`
	Feed      string `yaml:"feed"`
	BarDays   int    `yaml:"bar_days"`
}

// Finnhub holds credentials for the Finnhub fundamentals API.
type Finnhub struct {
	APIKey          string `yaml:"api_key"`
	BaseURL         string `yaml:"base_url"`
	RateLimitPerMin int    `yaml:"rate_limit_per_min"`
}

// GenAI configures the sentiment model.
type GenAI struct {
	APIKey string `yaml:"api_key"`
	Model  string `yaml:"model"`
}

// Logging configures the application logger.
type Logging struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Reel holds the reel engine timings and the TUI bindings.
type Reel struct {
	SmallThreshold    float64       `yaml:"small_threshold"`
	GestureThreshold  float64       `yaml:"gesture_threshold"`
	GestureTimeout    time.Duration `yaml:"gesture_timeout"`
	AnimationDuration time.Duration `yaml:"animation_duration"`
	CooldownDuration  time.Duration `yaml:"cooldown_duration"`
	AdvanceKey        string        `yaml:"advance_key"`
	// WheelStep is the delta reported for one terminal wheel notch.
	WheelStep float64 `yaml:"wheel_step"`
	// Timezone fixes the calendar used for the daily reshuffle.
	Timezone  string `yaml:"timezone"`
	NewsLimit int    `yaml:"news_limit"`
}

// EngineConfig converts the reel section into an engine configuration.
func (r Reel) EngineConfig() reel.Config {
	return reel.Config{
		SmallThreshold:    r.SmallThreshold,
		GestureThreshold:  r.GestureThreshold,
		GestureTimeout:    r.GestureTimeout,
		AnimationDuration: r.AnimationDuration,
		CooldownDuration:  r.CooldownDuration,
		AdvanceKey:        r.AdvanceKey,
	}
}

// LoadLocation resolves the reel timezone. An empty name means UTC.
func (r Reel) LoadLocation() (*time.Location, error) {
	if r.Timezone == "" {
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(r.Timezone)
	if err != nil {
		return nil, fmt.Errorf("timezone %q: %w", r.Timezone, err)
	}
	return loc, nil
}

// Location loads the reel timezone, falling back to UTC. Load rejects an
// unknown timezone, so the fallback only applies to hand-built configs.
func (r Reel) Location() *time.Location {
	if r.Timezone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(r.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// ListenAddr returns host:port for the HTTP server.
func (s Server) ListenAddr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	rc := reel.DefaultConfig()
	return &Config{
		User: "local",
		Storage: Storage{
			DataDir:    "data",
			SQLitePath: "data/scout.db",
			Backend:    "sqlite",
			StatePath:  "data/state.json",
		},
		Server: Server{
			Host: "127.0.0.1",
			Port: 8090,
			Addr: "http://127.0.0.1:8090",

			RateLimitPerMin: 120,
			RateBurst:       20,
			RequestTimeout:  30 * time.Second,
		},
		Alpaca: Alpaca{
			DataURL: "https://data.alpaca.markets",
			Feed:    "iex",
			BarDays: 90,
		},
		Finnhub: Finnhub{
			BaseURL:         "https://finnhub.io/api/v1",
			RateLimitPerMin: 60,
		},
		GenAI: GenAI{
			Model: "gemini-2.5-flash",
		},
		Logging: Logging{
			Level:  "info",
			Format: "json",
		},
		Reel: Reel{
			SmallThreshold:    rc.SmallThreshold,
			GestureThreshold:  rc.GestureThreshold,
			GestureTimeout:    rc.GestureTimeout,
			AnimationDuration: rc.AnimationDuration,
			CooldownDuration:  rc.CooldownDuration,
			AdvanceKey:        rc.AdvanceKey,
			WheelStep:         40,
			Timezone:          "America/New_York",
			NewsLimit:         8,
		},
	}
}

// ---------------------------------------------------------------------------
// Loading
// ---------------------------------------------------------------------------

// Load reads the YAML configuration file at the given path over the defaults,
// then applies environment variable overrides.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	applyEnvOverrides(cfg)

	if err := cfg.Reel.EngineConfig().Validate(); err != nil {
		return nil, fmt.Errorf("reel section: %w", err)
	}
	if _, err := cfg.Reel.LoadLocation(); err != nil {
		return nil, fmt.Errorf("reel section: %w", err)
	}
	return cfg, nil
}

// LoadOrDefault loads path when it exists and otherwise returns the defaults
// with environment overrides applied.
func LoadOrDefault(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		cfg := Default()
		applyEnvOverrides(cfg)
		return cfg, nil
	}
	return Load(path)
}

// Path returns the config file path: $SCOUT_CONFIG or config/scout.yaml.
func Path() string {
	if v := os.Getenv("SCOUT_CONFIG"); v != "" {
		return v
	}
	return "config/scout.yaml"
}

// applyEnvOverrides checks well-known environment variables and overrides the
// corresponding configuration fields when they are set.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("SCOUT_USER"); v != "" {
		cfg.User = v
	}

	if v := os.Getenv("DATA_DIR"); v != "" {
		cfg.Storage.DataDir = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Storage.SQLitePath = v
	}

	if v := os.Getenv("SCOUT_ADDR"); v != "" {
		cfg.Server.Addr = v
	}

	if v := os.Getenv("FINNHUB_API_KEY"); v != "" {
		cfg.Finnhub.APIKey = v
	}
	if v := os.Getenv("GEMINI_API_KEY"); v != "" {
		cfg.GenAI.APIKey = v
	}

	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}

	// Standard Alpaca env vars (canonical names used by the SDK).
	if v := os.Getenv("APCA_API_KEY_ID"); v != "" {
		cfg.Alpaca.APIKey = v
	}
	if v := os.Getenv("APCA_API_SECRET_KEY"); v != "" {
		cfg.Alpaca.APISecret = v
	}
}
