package config

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/viper"
)

const (
	defaultDBPath         = "./printgenie.db"
	defaultPort           = "8080"
	defaultEnvironment    = "development"
	defaultLogLevel       = "info"
	defaultGitHubPath     = "catalog.json"
	defaultGitHubBranch   = "main"
	defaultPublishTimeout = 15 * time.Second
)

// Config holds application configuration sourced from environment variables
// and an optional .env file.
type Config struct {
	Port        string
	Environment string
	LogLevel    string
	DBPath      string

	AdminEmail    string
	AdminPassword string
	SessionSecret string

	GitHub         GitHubConfig
	PublishTimeout time.Duration

	generatedSecret bool
}

// GitHubConfig locates the repository file the catalog is published to.
type GitHubConfig struct {
	Token  string
	Owner  string
	Repo   string
	Path   string
	Branch string
}

// Enabled reports whether enough is configured to publish.
func (g GitHubConfig) Enabled() bool {
	return g.Token != "" && g.Owner != "" && g.Repo != ""
}

func (c Config) IsDev() bool {
	return c.Environment == defaultEnvironment
}

// Warnings lists settings that are missing but not fatal.
func (c Config) Warnings() []string {
	var out []string
	if c.AdminEmail == "" {
		out = append(out, "ADMIN_EMAIL is not set")
	}
	if c.AdminPassword == "" {
		out = append(out, "ADMIN_PASSWORD is not set")
	}
	if c.generatedSecret {
		out = append(out, "SESSION_SECRET is not set; using a random secret, sessions end on restart")
	}
	if !c.GitHub.Enabled() {
		out = append(out, "GITHUB_TOKEN, GITHUB_OWNER or GITHUB_REPO is not set; catalog publishing is disabled")
	}
	return out
}

// Load reads configuration from the environment, falling back to a .env file
// in the working directory or one of its parents.
func Load() (Config, error) {
	return LoadFrom(".", "..", "../..")
}

// LoadFrom is Load with explicit .env search paths. Environment variables
// always win over the file.
func LoadFrom(paths ...string) (Config, error) {
	v := viper.New()
	v.SetConfigType("env")
	v.SetConfigName(".env")
	for _, p := range paths {
		v.AddConfigPath(p)
	}

	v.SetDefault("PORT", defaultPort)
	v.SetDefault("ENVIRONMENT", defaultEnvironment)
	v.SetDefault("LOG_LEVEL", defaultLogLevel)
	v.SetDefault("DB_PATH", defaultDBPath)
	v.SetDefault("GITHUB_PATH", defaultGitHubPath)
	v.SetDefault("GITHUB_BRANCH", defaultGitHubBranch)
	v.SetDefault("PUBLISH_TIMEOUT", defaultPublishTimeout.String())

	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	}

	timeout, err := time.ParseDuration(v.GetString("PUBLISH_TIMEOUT"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PUBLISH_TIMEOUT: %w", err)
	}
	if timeout <= 0 {
		return Config{}, fmt.Errorf("PUBLISH_TIMEOUT must be positive, got %s", timeout)
	}

	cfg := Config{
		Port:          v.GetString("PORT"),
		Environment:   v.GetString("ENVIRONMENT"),
		LogLevel:      v.GetString("LOG_LEVEL"),
		DBPath:        v.GetString("DB_PATH"),
		AdminEmail:    v.GetString("ADMIN_EMAIL"),
		AdminPassword: v.GetString("ADMIN_PASSWORD"),
		SessionSecret: v.GetString("SESSION_SECRET"),
		GitHub: GitHubConfig{
			Token:  v.GetString("GITHUB_TOKEN"),
			Owner:  v.GetString("GITHUB_OWNER"),
			Repo:   v.GetString("GITHUB_REPO"),
			Path:   v.GetString("GITHUB_PATH"),
			Branch: v.GetString("GITHUB_BRANCH"),
		},
		PublishTimeout: timeout,
	}

	if cfg.SessionSecret == "" {
		if !cfg.IsDev() {
			return Config{}, errors.New("SESSION_SECRET is required outside development")
		}
		secret, err := randomSecret()
		if err != nil {
			return Config{}, fmt.Errorf("generate session secret: %w", err)
		}
		cfg.SessionSecret = secret
		cfg.generatedSecret = true
	}

	return cfg, nil
}

func randomSecret() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
