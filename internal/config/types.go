package config

import "time"

// Config represents the full memoria client configuration document.
type Config struct {
	API       APISettings      `yaml:"api"`
	Providers ProviderSettings `yaml:"providers"`
	Game      GameSettings     `yaml:"game"`
	Storage   StorageSettings  `yaml:"storage"`
	Log       LogSettings      `yaml:"log"`
}

// APISettings points the client at the game REST API.
type APISettings struct {
	BaseURL string        `yaml:"base_url" validate:"required,http_url"`
	Timeout time.Duration `yaml:"timeout" validate:"gt=0"`
}

// ProviderSettings holds the origins of the third-party image APIs.
type ProviderSettings struct {
	PotterURL  string `yaml:"potter_url" validate:"required,http_url"`
	PokemonURL string `yaml:"pokemon_url" validate:"required,http_url"`
	CatURL     string `yaml:"cat_url" validate:"required,http_url"`
}

// GameSettings tunes a single round.
type GameSettings struct {
	Grid        string        `yaml:"grid" validate:"required,grid"`
	TimeLimit   int           `yaml:"time_limit" validate:"min=1,max=3600"`
	RevealDelay time.Duration `yaml:"reveal_delay" validate:"gt=0"`
}

// StorageSettings locates the local key/value store.
type StorageSettings struct {
	Path string `yaml:"path" validate:"required"`
}

// LogSettings configures the file logger used while the TUI owns the terminal.
type LogSettings struct {
	Level string `yaml:"level" validate:"required,oneof=debug info warn error"`
	File  string `yaml:"file"`
}

const (
	DefaultBaseURL     = "http://localhost:8000"
	DefaultPotterURL   = "https://potterhead-api.vercel.app"
	DefaultPokemonURL  = "https://pokeapi.co"
	DefaultCatURL      = "https://api.thecatapi.com"
	DefaultGrid        = "4x4"
	DefaultTimeLimit   = 120
	DefaultRevealDelay = time.Second
	DefaultTimeout     = 10 * time.Second
)

// Default returns a configuration populated with the built-in defaults. Paths
// are relative to dir, usually ~/.memoria.
func Default(dir string) *Config {
	return &Config{
		API: APISettings{
			BaseURL: DefaultBaseURL,
			Timeout: DefaultTimeout,
		},
		Providers: ProviderSettings{
			PotterURL:  DefaultPotterURL,
			PokemonURL: DefaultPokemonURL,
			CatURL:     DefaultCatURL,
		},
		Game: GameSettings{
			Grid:        DefaultGrid,
			TimeLimit:   DefaultTimeLimit,
			RevealDelay: DefaultRevealDelay,
		},
		Storage: StorageSettings{Path: joinDir(dir, "storage.json")},
		Log: LogSettings{
			Level: "info",
			File:  joinDir(dir, "memoria.log"),
		},
	}
}
