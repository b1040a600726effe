package qtm

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DefaultEnvironment is used when QTM_ENVIRONMENT is unset.
const DefaultEnvironment = "qa"

// DefaultEnvironments maps environment names to backend base URLs.
func DefaultEnvironments() map[string]string {
	return map[string]string{
		"qa":      "https://qtm-backend-qa.azurewebsites.net",
		"dev":     "https://qtm-backend-dev.azurewebsites.net",
		"staging": "https://qtm-backend-staging.azurewebsites.net",
		"prod":    "https://qtm-backend.azurewebsites.net",
	}
}

// environmentsFile is the YAML shape of an environments override file.
type environmentsFile struct {
	Environments map[string]string `yaml:"environments"`
}

// LoadEnvironments reads an environment → base URL map from a YAML file.
// Entries merge over the defaults, so a file only needs to list overrides:
//
//	environments:
//	  qa: https://qtm-backend-qa.internal.example.com
func LoadEnvironments(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read environments file: %w", err)
	}

	var file environmentsFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse environments file %s: %w", path, err)
	}

	envs := DefaultEnvironments()
	for name, url := range file.Environments {
		envs[strings.ToLower(strings.TrimSpace(name))] = url
	}
	return envs, nil
}

// ResolveEnvironment returns the base URL for an environment name.
func ResolveEnvironment(envs map[string]string, name string) (string, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	url, ok := envs[name]
	if !ok {
		return "", fmt.Errorf("unknown environment %q", name)
	}
	return url, nil
}

// Config carries the dotenv-driven settings for a cloning session.
type Config struct {
	// Environment is the selected environment name (e.g. "qa").
	Environment string

	// BaseURL is the backend base URL for the environment.
	BaseURL string

	// AuthToken is the bearer token, when one has been saved.
	AuthToken string

	// Username and Password authenticate when no token is available.
	Username string
	Password string

	// ProjectID is the default project to operate on; zero when unset.
	ProjectID int64
}

// LoadConfig loads settings from the process environment, after merging in a
// .env file when one exists in the working directory. A missing .env file is
// not an error.
func LoadConfig() (*Config, error) {
	// Load .env into the process environment; existing variables win.
	_ = godotenv.Load()

	cfg := &Config{
		Environment: strings.ToLower(strings.TrimSpace(os.Getenv("QTM_ENVIRONMENT"))),
		AuthToken:   os.Getenv("AUTH_TOKEN"),
		Username:    os.Getenv("AUTH_USERNAME"),
		Password:    os.Getenv("AUTH_PASSWORD"),
	}
	if cfg.Environment == "" {
		cfg.Environment = DefaultEnvironment
	}

	baseURL, err := ResolveEnvironment(DefaultEnvironments(), cfg.Environment)
	if err != nil {
		return nil, fmt.Errorf("QTM_ENVIRONMENT: %w", err)
	}
	cfg.BaseURL = baseURL

	if raw := os.Getenv("PROJECT_ID"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("PROJECT_ID is not a valid integer: %q", raw)
		}
		cfg.ProjectID = id
	}

	return cfg, nil
}

// SaveToken persists a bearer token under AUTH_TOKEN in the given dotenv
// file, preserving the file's other entries. The file is created when it
// does not exist.
func SaveToken(path, token string) error {
	env, err := godotenv.Read(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}
		env = map[string]string{}
	}

	env["AUTH_TOKEN"] = token
	if err := godotenv.Write(env, path); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
