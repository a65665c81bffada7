package config

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type Config struct {
	Env       string
	Port      int
	APIPrefix string

	Database DatabaseConfig
	Redis    RedisConfig
	CORS     CORSConfig
	Log      LogConfig
	Catalog  CatalogConfig
	Planner  PlannerConfig
}

type DatabaseConfig struct {
	Host         string
	Port         int
	User         string
	Password     string
	Name         string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

// CatalogConfig tunes catalog lookups and their Redis cache.
type CatalogConfig struct {
	CacheEnabled bool
	CacheTTL     time.Duration
	SearchLimit  int
}

// PlannerConfig governs the combination search and ranking heuristics.
type PlannerConfig struct {
	MaxResults    int
	MaxNodes      int
	SearchTimeout time.Duration

	// Ranking weights. Day-off and gap terms are deliberately dominant so
	// that compact, free-day-friendly schedules rank first.
	DayOffBonus         float64
	GapPenaltyPerMinute float64
	CreditPenalty       float64
	CampusBonus         float64

	// Inter-campus travel buffers in minutes. Pairs override the default,
	// keyed as "CAMPUS_A|CAMPUS_B=minutes" entries.
	TravelDefaultMinutes int
	TravelPairs          map[string]int
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	cfg := &Config{}

	cfg.Env = v.GetString("ENV")
	cfg.Port = v.GetInt("PORT")
	cfg.APIPrefix = v.GetString("API_PREFIX")

	cfg.Database = DatabaseConfig{
		Host:         v.GetString("DB_HOST"),
		Port:         v.GetInt("DB_PORT"),
		User:         v.GetString("DB_USER"),
		Password:     v.GetString("DB_PASSWORD"),
		Name:         v.GetString("DB_NAME"),
		SSLMode:      v.GetString("DB_SSL_MODE"),
		MaxOpenConns: v.GetInt("DB_MAX_OPEN_CONNS"),
		MaxIdleConns: v.GetInt("DB_MAX_IDLE_CONNS"),
	}

	cfg.Redis = RedisConfig{
		Host:     v.GetString("REDIS_HOST"),
		Port:     v.GetInt("REDIS_PORT"),
		Password: v.GetString("REDIS_PASSWORD"),
		DB:       v.GetInt("REDIS_DB"),
	}

	cfg.CORS = CORSConfig{AllowedOrigins: splitAndTrim(v.GetString("ALLOWED_ORIGINS"))}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	cfg.Catalog = CatalogConfig{
		CacheEnabled: v.GetBool("CATALOG_CACHE_ENABLED"),
		CacheTTL:     parseDuration(v.GetString("CATALOG_CACHE_TTL"), 15*time.Minute),
		SearchLimit:  v.GetInt("CATALOG_SEARCH_LIMIT"),
	}

	cfg.Planner = PlannerConfig{
		MaxResults:           v.GetInt("PLANNER_MAX_RESULTS"),
		MaxNodes:             v.GetInt("PLANNER_MAX_NODES"),
		SearchTimeout:        parseDuration(v.GetString("PLANNER_SEARCH_TIMEOUT"), 2*time.Second),
		DayOffBonus:          v.GetFloat64("PLANNER_DAY_OFF_BONUS"),
		GapPenaltyPerMinute:  v.GetFloat64("PLANNER_GAP_PENALTY"),
		CreditPenalty:        v.GetFloat64("PLANNER_CREDIT_PENALTY"),
		CampusBonus:          v.GetFloat64("PLANNER_CAMPUS_BONUS"),
		TravelDefaultMinutes: v.GetInt("PLANNER_TRAVEL_DEFAULT_MINUTES"),
		TravelPairs:          parseTravelPairs(v.GetString("PLANNER_TRAVEL_PAIRS")),
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 8080)
	v.SetDefault("API_PREFIX", "/api/v1")

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "course_planner")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_MAX_OPEN_CONNS", 10)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("CATALOG_CACHE_ENABLED", false)
	v.SetDefault("CATALOG_CACHE_TTL", "15m")
	v.SetDefault("CATALOG_SEARCH_LIMIT", 20)

	v.SetDefault("PLANNER_MAX_RESULTS", 200)
	v.SetDefault("PLANNER_MAX_NODES", 100000)
	v.SetDefault("PLANNER_SEARCH_TIMEOUT", "2s")
	v.SetDefault("PLANNER_DAY_OFF_BONUS", 120.0)
	v.SetDefault("PLANNER_GAP_PENALTY", 1.0)
	v.SetDefault("PLANNER_CREDIT_PENALTY", 5.0)
	v.SetDefault("PLANNER_CAMPUS_BONUS", 10.0)
	v.SetDefault("PLANNER_TRAVEL_DEFAULT_MINUTES", 40)
	v.SetDefault("PLANNER_TRAVEL_PAIRS", "BUSCH|LIVINGSTON=30")
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}

	return d
}

func splitAndTrim(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}

// parseTravelPairs reads "A|B=30,C|D=45" into a pair->minutes map. Malformed
// entries are skipped rather than failing startup.
func parseTravelPairs(raw string) map[string]int {
	result := make(map[string]int)
	for _, entry := range strings.Split(raw, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		kv := strings.SplitN(entry, "=", 2)
		if len(kv) != 2 {
			continue
		}
		minutes, err := strconv.Atoi(strings.TrimSpace(kv[1]))
		if err != nil || minutes < 0 {
			continue
		}
		campuses := strings.SplitN(kv[0], "|", 2)
		if len(campuses) != 2 {
			continue
		}
		a := strings.ToUpper(strings.TrimSpace(campuses[0]))
		b := strings.ToUpper(strings.TrimSpace(campuses[1]))
		if a == "" || b == "" {
			continue
		}
		if a > b {
			a, b = b, a
		}
		result[a+"|"+b] = minutes
	}
	return result
}
