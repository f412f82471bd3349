package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"i18n-extract/internal/extractor"
)

// ErrInvalid is returned by Validate.
var ErrInvalid = errors.New("invalid configuration")

type Config struct {
	SourceLocale string
	Locales      []string
	LocalesDir   string
	LocaleExts   []string
	Rule         string

	ScriptIgnoreAttributes []string
	SFCIgnoreAttributes    []string
	SFCImportantAttributes []string
	SFCImportantBinds      []string

	WorkerCount int
	CacheSize   int
	LogLevel    string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Warn().Msg("No .env file found, using environment variables")
	}
	return FromEnv()
}

// FromEnv reads the configuration from the process environment only.
func FromEnv() *Config {
	defaults := extractor.DefaultOptions()
	return &Config{
		SourceLocale:           getEnv("I18N_SOURCE_LOCALE", "zh-CN"),
		Locales:                getEnvList("I18N_LOCALES", []string{"zh-CN", "en"}),
		LocalesDir:             getEnv("I18N_LOCALES_DIR", "locales"),
		LocaleExts:             getEnvList("I18N_LOCALE_EXT", []string{".json"}),
		Rule:                   getEnv("I18N_RULE", "han"),
		ScriptIgnoreAttributes: getEnvList("I18N_SCRIPT_IGNORE_ATTRS", defaults.Script.IgnoreAttributes),
		SFCIgnoreAttributes:    getEnvList("I18N_SFC_IGNORE_ATTRS", defaults.SFC.IgnoreAttributes),
		SFCImportantAttributes: getEnvList("I18N_SFC_IMPORTANT_ATTRS", defaults.SFC.ImportantAttributes),
		SFCImportantBinds:      getEnvList("I18N_SFC_IMPORTANT_BINDS", defaults.SFC.ImportantBinds),
		WorkerCount:            getEnvInt("WORKER_COUNT", 8),
		CacheSize:              getEnvInt("CACHE_SIZE", 128),
		LogLevel:               getEnv("LOG_LEVEL", "info"),
	}
}

// Validate checks the locale settings and sizes.
func (c *Config) Validate() error {
	if len(c.Locales) == 0 {
		return fmt.Errorf("%w: no locales configured", ErrInvalid)
	}
	found := false
	for _, l := range c.Locales {
		if l == c.SourceLocale {
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("%w: source locale %q is not in %v", ErrInvalid, c.SourceLocale, c.Locales)
	}
	if c.CacheSize < 1 {
		return fmt.Errorf("%w: CACHE_SIZE must be positive, got %d", ErrInvalid, c.CacheSize)
	}
	return nil
}

// LanguageMapFile maps each locale to its candidate resource files, one per extension in
// the configured order.
func (c *Config) LanguageMapFile() map[string][]string {
	out := make(map[string][]string, len(c.Locales))
	for _, l := range c.Locales {
		for _, ext := range c.LocaleExts {
			if !strings.HasPrefix(ext, ".") {
				ext = "." + ext
			}
			out[l] = append(out[l], filepath.Join(c.LocalesDir, l+ext))
		}
	}
	return out
}

// ExtractorOptions returns the attribute lists for the default dispatcher.
func (c *Config) ExtractorOptions() extractor.Options {
	return extractor.Options{
		Script: extractor.ScriptOptions{IgnoreAttributes: c.ScriptIgnoreAttributes},
		SFC: extractor.SFCOptions{
			ImportantAttributes: c.SFCImportantAttributes,
			ImportantBinds:      c.SFCImportantBinds,
			IgnoreAttributes:    c.SFCIgnoreAttributes,
		},
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

// getEnvList splits a comma-separated variable, dropping empty items.
func getEnvList(key string, fallback []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	var out []string
	for _, item := range strings.Split(v, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
