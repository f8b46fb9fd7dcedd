package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	memerrors "github.com/alexisbeaulieu97/memoria/pkg/errors"
)

func TestLoad(t *testing.T) {
	t.Parallel()

	validYAML := `api:
  base_url: http://api.example.test:9000
  timeout: 3s
game:
  grid: 2x4
  time_limit: 60
`

	invalidYAML := `api:
  base_url: [1, 2]
`

	badGrid := `game:
  grid: 3x3
`

	badLevel := `log:
  level: chatty
`

	cases := []struct {
		name     string
		contents string
		assert   func(t *testing.T, cfg *Config, err error)
	}{
		{
			name:     "file values override defaults",
			contents: validYAML,
			assert: func(t *testing.T, cfg *Config, err error) {
				require.NoError(t, err)
				require.Equal(t, "http://api.example.test:9000", cfg.API.BaseURL)
				require.Equal(t, 3*time.Second, cfg.API.Timeout)
				require.Equal(t, "2x4", cfg.Game.Grid)
				require.Equal(t, 60, cfg.Game.TimeLimit)
				require.Equal(t, DefaultRevealDelay, cfg.Game.RevealDelay)
				require.Equal(t, DefaultPokemonURL, cfg.Providers.PokemonURL)
			},
		},
		{
			name:     "invalid yaml returns parse error",
			contents: invalidYAML,
			assert: func(t *testing.T, cfg *Config, err error) {
				var parseErr *memerrors.ParseError
				require.ErrorAs(t, err, &parseErr)
				require.Equal(t, 2, parseErr.Line)
				require.Contains(t, parseErr.Message, "cannot unmarshal")
			},
		},
		{
			name:     "odd grid is rejected",
			contents: badGrid,
			assert: func(t *testing.T, cfg *Config, err error) {
				var validationErr *memerrors.ValidationError
				require.ErrorAs(t, err, &validationErr)
				require.Equal(t, "config.game.grid", validationErr.Field)
			},
		},
		{
			name:     "unknown log level is rejected",
			contents: badLevel,
			assert: func(t *testing.T, cfg *Config, err error) {
				var validationErr *memerrors.ValidationError
				require.ErrorAs(t, err, &validationErr)
				require.Contains(t, validationErr.Message, "oneof")
			},
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			path := writeTempConfig(t, tc.contents)
			cfg, err := Load(path, filepath.Dir(path))
			tc.assert(t, cfg, err)
		})
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	cfg, err := Load(filepath.Join(dir, "absent.yaml"), dir)
	require.NoError(t, err)
	require.Equal(t, DefaultBaseURL, cfg.API.BaseURL)
	require.Equal(t, DefaultTimeLimit, cfg.Game.TimeLimit)
	require.Equal(t, filepath.Join(dir, "storage.json"), cfg.Storage.Path)
	require.Equal(t, filepath.Join(dir, "memoria.log"), cfg.Log.File)
}

func TestLoadAppliesEnvironmentOverrides(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(EnvAPIURL, "http://override.test")
	t.Setenv(EnvLogLevel, "DEBUG")
	t.Setenv(EnvStorage, filepath.Join(dir, "other.json"))

	cfg, err := Load("", dir)
	require.NoError(t, err)
	require.Equal(t, "http://override.test", cfg.API.BaseURL)
	require.Equal(t, "debug", cfg.Log.Level)
	require.Equal(t, filepath.Join(dir, "other.json"), cfg.Storage.Path)
}

func TestLoadEnvFile(t *testing.T) {
	dir := t.TempDir()
	envPath := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envPath, []byte(EnvAPIURL+"=http://from-dotenv.test\n"), 0o600))
	t.Setenv(EnvAPIURL, "")
	require.NoError(t, os.Unsetenv(EnvAPIURL))

	require.NoError(t, LoadEnvFile(envPath))
	require.NoError(t, LoadEnvFile(filepath.Join(dir, "missing.env")))

	cfg, err := Load("", dir)
	require.NoError(t, err)
	require.Equal(t, "http://from-dotenv.test", cfg.API.BaseURL)
}

func TestValidateConfigRejectsLongRevealDelay(t *testing.T) {
	t.Parallel()

	cfg := Default(t.TempDir())
	cfg.Game.TimeLimit = 1
	cfg.Game.RevealDelay = 2 * time.Second

	err := ValidateConfig(cfg)
	var validationErr *memerrors.ValidationError
	require.ErrorAs(t, err, &validationErr)
	require.Equal(t, "config.game.reveal_delay", validationErr.Field)
}

func TestValidateConfigNil(t *testing.T) {
	t.Parallel()

	require.Error(t, ValidateConfig(nil))
}

func writeTempConfig(t *testing.T, contents string) string {
	t.Helper()

	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o600))
	return path
}
