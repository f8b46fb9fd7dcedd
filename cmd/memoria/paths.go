package main

import (
	"os"
	"path/filepath"
	"strings"
)

const (
	homeDirName    = ".memoria"
	configFileName = "config.yaml"
	envFileName    = ".env"
)

func defaultHomeDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(home, homeDirName), nil
}

func resolveHomeDir(flagValue string) (string, error) {
	if dir := strings.TrimSpace(flagValue); dir != "" {
		return filepath.Abs(dir)
	}
	return defaultHomeDir()
}

func resolveConfigPath(flagValue, homeDir string) string {
	if path := strings.TrimSpace(flagValue); path != "" {
		return path
	}
	return filepath.Join(homeDir, configFileName)
}
