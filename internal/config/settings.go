package config

import (
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Settings are the interpreter's user-overridable preferences. They never
// affect language semantics — only how the CLI presents itself — so a
// missing or malformed config file is never fatal.
type Settings struct {
	// Prompt is printed before each REPL line when stdin is a terminal.
	Prompt string `yaml:"prompt"`
	// ShowStats makes the REPL report step count and elapsed time after
	// every line, and the file runner report them once at exit.
	ShowStats bool `yaml:"show_stats"`
}

func defaultSettings() Settings {
	return Settings{Prompt: "> ", ShowStats: false}
}

// LoadSettings builds Settings from, in increasing priority: built-in
// defaults, a YAML config file at path (if it exists), and environment
// variables (loaded from a .env file in the working directory, if
// present, via godotenv, then read with os.Getenv so a real environment
// variable always wins over the .env file).
func LoadSettings(path string) Settings {
	settings := defaultSettings()

	if data, err := os.ReadFile(path); err == nil {
		_ = yaml.Unmarshal(data, &settings)
	}

	_ = godotenv.Load()
	if v := os.Getenv("LOX_PROMPT"); v != "" {
		settings.Prompt = v
	}
	if v := os.Getenv("LOX_SHOW_STATS"); v == "1" || v == "true" {
		settings.ShowStats = true
	}

	return settings
}
