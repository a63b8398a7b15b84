package config

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/ZanzyTHEbar/resume-match-analyzer/internal/analysis"
	apperrors "github.com/ZanzyTHEbar/resume-match-analyzer/internal/errors"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// DefaultConfigName is looked up in the working directory when no file is given.
const DefaultConfigName = "match-analyzer"

// Config holds all runtime settings. Every key can be overridden by an
// environment variable named after it, upper-cased with dots as underscores
// (analyzer.mode -> ANALYZER_MODE).
type Config struct {
	Port     string `mapstructure:"port"`
	Env      string `mapstructure:"env"`
	DataDir  string `mapstructure:"data_dir"`
	LogLevel string `mapstructure:"log_level"`

	Analyzer  AnalyzerConfig  `mapstructure:"analyzer"`
	Redis     RedisConfig     `mapstructure:"redis"`
	RateLimit RateLimitConfig `mapstructure:"ratelimit"`
	Cache     CacheConfig     `mapstructure:"cache"`
	Server    ServerConfig    `mapstructure:"server"`
	CORS      CORSConfig      `mapstructure:"cors"`
	Security  SecurityConfig  `mapstructure:"security"`
	Stats     StatsConfig     `mapstructure:"stats"`
}

type AnalyzerConfig struct {
	Mode          string `mapstructure:"mode"`
	MaxInputChars int    `mapstructure:"max_input_chars"`
	Lexicon       string `mapstructure:"lexicon"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type RateLimitConfig struct {
	IPPerMin int `mapstructure:"ip_per_min"`
}

type CacheConfig struct {
	Enabled bool          `mapstructure:"enabled"`
	TTL     time.Duration `mapstructure:"ttl"`
}

type ServerConfig struct {
	RequestTimeout  time.Duration `mapstructure:"request_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	Profiling       bool          `mapstructure:"profiling"`
	Compression     bool          `mapstructure:"compression"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type SecurityConfig struct {
	HSTS         bool   `mapstructure:"hsts"`
	CSPReportURI string `mapstructure:"csp_report_uri"`
}

type StatsConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", "8080")
	v.SetDefault("env", "development")
	v.SetDefault("data_dir", "./data")
	v.SetDefault("log_level", "info")

	v.SetDefault("analyzer.mode", string(analysis.ModeKeyword))
	v.SetDefault("analyzer.max_input_chars", 20000)
	v.SetDefault("analyzer.lexicon", "")

	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	v.SetDefault("ratelimit.ip_per_min", 30)

	v.SetDefault("cache.enabled", true)
	v.SetDefault("cache.ttl", 15*time.Minute)

	v.SetDefault("server.request_timeout", 30*time.Second)
	v.SetDefault("server.shutdown_timeout", 30*time.Second)
	v.SetDefault("server.profiling", false)
	v.SetDefault("server.compression", true)

	v.SetDefault("cors.allowed_origins", []string{"http://localhost:3000", "http://localhost:5173"})

	v.SetDefault("security.hsts", false)
	v.SetDefault("security.csp_report_uri", "")

	v.SetDefault("stats.enabled", true)
}

// Load reads .env (if present), then the config file, then the environment.
// An empty path looks for match-analyzer.yaml in the working directory and
// tolerates its absence; an explicit path must exist.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err == nil {
		slog.Debug("Loaded .env file")
	}

	v := viper.New()
	setDefaults(v)

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName(DefaultConfigName)
		v.SetConfigType("yaml")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, apperrors.NewConfigurationError(fmt.Sprintf("reading config: %v", err), err)
		}
	} else {
		slog.Info("Loaded config file", "path", v.ConfigFileUsed())
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, apperrors.NewConfigurationError(fmt.Sprintf("decoding config: %v", err), err)
	}

	cfg.CORS.AllowedOrigins = splitOrigins(cfg.CORS.AllowedOrigins)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// splitOrigins flattens comma-separated entries and drops blanks.
func splitOrigins(in []string) []string {
	var out []string
	for _, item := range in {
		for _, origin := range strings.Split(item, ",") {
			if origin = strings.TrimSpace(origin); origin != "" {
				out = append(out, origin)
			}
		}
	}
	return out
}

// Validate rejects settings the server cannot run with
func (c *Config) Validate() error {
	problems := map[string]string{}

	if port, err := strconv.Atoi(c.Port); err != nil || port <= 0 || port > 65535 {
		problems["port"] = fmt.Sprintf("invalid port %q", c.Port)
	}
	if _, err := analysis.ParseMode(c.Analyzer.Mode); err != nil {
		problems["analyzer.mode"] = err.Error()
	}
	if c.Analyzer.MaxInputChars <= 0 {
		problems["analyzer.max_input_chars"] = "must be positive"
	}
	if c.RateLimit.IPPerMin <= 0 {
		problems["ratelimit.ip_per_min"] = "must be positive"
	}
	if c.Cache.Enabled && c.Cache.TTL <= 0 {
		problems["cache.ttl"] = "must be positive when the cache is enabled"
	}
	if c.Server.RequestTimeout <= 0 {
		problems["server.request_timeout"] = "must be positive"
	}
	for _, origin := range c.CORS.AllowedOrigins {
		if origin != "*" && !strings.HasPrefix(origin, "http://") && !strings.HasPrefix(origin, "https://") {
			problems["cors.allowed_origins"] = fmt.Sprintf("origin %q needs an http:// or https:// scheme", origin)
		}
	}

	if len(problems) == 0 {
		return nil
	}

	lines := make([]string, 0, len(problems))
	for k, msg := range problems {
		lines = append(lines, k+": "+msg)
	}
	sort.Strings(lines)
	return apperrors.NewConfigurationError(strings.Join(lines, "; "), nil)
}

// Mode returns the parsed analyzer mode
func (c *Config) Mode() analysis.Mode {
	mode, err := analysis.ParseMode(c.Analyzer.Mode)
	if err != nil {
		return analysis.ModeKeyword
	}
	return mode
}

// IsProduction reports whether env is production
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Env, "production")
}
