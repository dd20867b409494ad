package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds every setting of the API process. Values come from configs/app.env
// and are overridden by environment variables of the same name.
type Config struct {
	Environment   string `mapstructure:"ENVIRONMENT"`
	ServerAddress string `mapstructure:"SERVER_ADDRESS"`
	LogLevel      string `mapstructure:"LOG_LEVEL"`

	DBSource string `mapstructure:"DB_SOURCE"`

	SupabaseURL       string `mapstructure:"SUPABASE_URL"`
	SupabaseAnonKey   string `mapstructure:"SUPABASE_ANON_KEY"`
	SupabaseJWTSecret string `mapstructure:"SUPABASE_JWT_SECRET"`
	GoogleClientID    string `mapstructure:"GOOGLE_CLIENT_ID"`

	GoogleTranslateAPIKey string `mapstructure:"GOOGLE_TRANSLATE_API_KEY"`
	LibreTranslateURL     string `mapstructure:"LIBRETRANSLATE_URL"`
	LibreTranslateAPIKey  string `mapstructure:"LIBRETRANSLATE_API_KEY"`
	PhotonBaseURL         string `mapstructure:"PHOTON_BASE"`
	OpenRouteServiceURL   string `mapstructure:"ORS_BASE_URL"`
	OpenRouteServiceKey   string `mapstructure:"ORS_API_KEY"`

	ProviderTimeout     time.Duration `mapstructure:"PROVIDER_TIMEOUT"`
	GeocodeCacheSize    int           `mapstructure:"GEOCODE_CACHE_SIZE"`
	GeocodeCacheTTL     time.Duration `mapstructure:"GEOCODE_CACHE_TTL"`
	TranslationCacheTTL time.Duration `mapstructure:"TRANSLATION_CACHE_TTL"`
	TranslationCacheDB  string        `mapstructure:"TRANSLATION_CACHE_DB"`

	AreaDataFiles string `mapstructure:"AREA_DATA_FILES"`

	AllowedOrigins string `mapstructure:"ALLOWED_ORIGINS"`
	OTelEndpoint   string `mapstructure:"OTEL_EXPORTER_ENDPOINT"`
}

// LoadConfig reads app.env from path and applies environment overrides.
func LoadConfig(path string) (config Config, err error) {
	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("app")
	v.SetConfigType("env")
	v.AutomaticEnv()

	setDefaults(v)

	if err = v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return config, fmt.Errorf("config: failed to read config: %w", err)
		}
	}

	if err = v.Unmarshal(&config); err != nil {
		return config, fmt.Errorf("config: failed to decode config: %w", err)
	}
	return config, nil
}

func setDefaults(v *viper.Viper) {
	// AutomaticEnv only resolves keys viper already knows about.
	defaults := map[string]any{
		"ENVIRONMENT":              "development",
		"SERVER_ADDRESS":           "0.0.0.0:5003",
		"LOG_LEVEL":                "info",
		"DB_SOURCE":                "",
		"SUPABASE_URL":             "",
		"SUPABASE_ANON_KEY":        "",
		"SUPABASE_JWT_SECRET":      "",
		"GOOGLE_CLIENT_ID":         "",
		"GOOGLE_TRANSLATE_API_KEY": "",
		"LIBRETRANSLATE_URL":       "http://localhost:5000",
		"LIBRETRANSLATE_API_KEY":   "",
		"PHOTON_BASE":              "https://photon.komoot.io",
		"ORS_BASE_URL":             "https://api.openrouteservice.org",
		"ORS_API_KEY":              "",
		"PROVIDER_TIMEOUT":         "10s",
		"GEOCODE_CACHE_SIZE":       500,
		"GEOCODE_CACHE_TTL":        "5m",
		"TRANSLATION_CACHE_TTL":    "24h",
		"TRANSLATION_CACHE_DB":     "translation_cache.db",
		"AREA_DATA_FILES":          "data/NTA.json,data/NJ-Filter.geojson",
		"ALLOWED_ORIGINS":          "",
		"OTEL_EXPORTER_ENDPOINT":   "",
	}
	for k, val := range defaults {
		v.SetDefault(k, val)
	}
}

// Validate reports the core secrets the process cannot start without.
func (c Config) Validate() error {
	var missing []string
	if c.DBSource == "" {
		missing = append(missing, "DB_SOURCE")
	}
	if c.SupabaseURL == "" {
		missing = append(missing, "SUPABASE_URL")
	}
	if c.SupabaseAnonKey == "" {
		missing = append(missing, "SUPABASE_ANON_KEY")
	}
	if len(missing) > 0 {
		return fmt.Errorf("config: missing required settings: %s", strings.Join(missing, ", "))
	}
	return nil
}

// IsDevelopment reports whether the process runs with developer defaults.
func (c Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// Origins splits ALLOWED_ORIGINS into extra allowed origins.
func (c Config) Origins() []string {
	return splitList(c.AllowedOrigins)
}

// DataFiles splits AREA_DATA_FILES into the GeoJSON files read by a server-side sync.
func (c Config) DataFiles() []string {
	return splitList(c.AreaDataFiles)
}

func splitList(s string) []string {
	var out []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
