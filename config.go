package main

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// Config is the user's ~/.flowstate.toml. Missing file or unreadable keys
// fall back to defaults; configuration problems never stop the editor from
// starting.
type Config struct {
	SaveDirectory string `toml:"save_directory"`
	Confirmations bool   `toml:"confirmations"`
	AnimatePan    bool   `toml:"animate_pan"`
}

func defaultConfig() *Config {
	return &Config{
		SaveDirectory: "",
		Confirmations: true,
		AnimatePan:    true,
	}
}

func loadConfig() *Config {
	config := defaultConfig()

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return config
	}

	configPath := filepath.Join(homeDir, ".flowstate.toml")
	if _, err := toml.DecodeFile(configPath, config); err != nil {
		return defaultConfig()
	}

	if strings.HasPrefix(config.SaveDirectory, "~") {
		config.SaveDirectory = filepath.Join(homeDir, strings.TrimPrefix(config.SaveDirectory, "~"))
	}
	if config.SaveDirectory != "" && !filepath.IsAbs(config.SaveDirectory) {
		if absPath, err := filepath.Abs(config.SaveDirectory); err == nil {
			config.SaveDirectory = absPath
		}
	}
	return config
}

func (c *Config) GetSavePath(filename string) string {
	if c.SaveDirectory == "" {
		return filename
	}
	os.MkdirAll(c.SaveDirectory, 0755)
	return filepath.Join(c.SaveDirectory, filename)
}
