package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	memerrors "github.com/alexisbeaulieu97/memoria/pkg/errors"
)

// Environment variables that override file settings.
const (
	EnvAPIURL   = "MEMORIA_API_URL"
	EnvLogLevel = "MEMORIA_LOG_LEVEL"
	EnvStorage  = "MEMORIA_STORAGE"
)

var yamlLineRegex = regexp.MustCompile(`line (\d+)`)

// Load reads the configuration at path on top of the defaults rooted at dir,
// applies environment overrides, and validates the result. A missing file is
// not an error.
func Load(path, dir string) (*Config, error) {
	cfg := Default(dir)

	if strings.TrimSpace(path) != "" {
		data, err := os.ReadFile(expandHome(path))
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return nil, memerrors.NewParseError(path, 0, err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, memerrors.NewParseError(path, extractLine(err), err)
			}
		}
	}

	applyEnv(cfg)
	cfg.Storage.Path = expandHome(cfg.Storage.Path)
	cfg.Log.File = expandHome(cfg.Log.File)

	if err := ValidateConfig(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadEnvFile loads KEY=VALUE pairs from a dotenv file into the process
// environment without overriding variables that are already set. A missing
// file is ignored.
func LoadEnvFile(path string) error {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("load env file %s: %w", path, err)
	}
	return nil
}

func applyEnv(cfg *Config) {
	if v := strings.TrimSpace(os.Getenv(EnvAPIURL)); v != "" {
		cfg.API.BaseURL = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogLevel)); v != "" {
		cfg.Log.Level = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvStorage)); v != "" {
		cfg.Storage.Path = v
	}
}

func extractLine(err error) int {
	if err == nil {
		return 0
	}

	matches := yamlLineRegex.FindStringSubmatch(err.Error())
	if len(matches) != 2 {
		return 0
	}

	var line int
	_, scanErr := fmt.Sscanf(matches[1], "%d", &line)
	if scanErr != nil {
		return 0
	}

	return line
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}

func joinDir(dir, name string) string {
	if dir == "" {
		return name
	}
	return filepath.Join(dir, name)
}
