package config

import (
	"errors"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
)

// Environment variables that provide defaults for command-line flags.
const (
	EnvDB       = "SAMEANIMAL_DB"
	EnvConfig   = "SAMEANIMAL_CONFIG"
	EnvLogLevel = "SAMEANIMAL_LOG_LEVEL"
	EnvSSHAddr  = "SAMEANIMAL_SSH_ADDR"
)

// Env holds flag defaults read from the environment.
type Env struct {
	DB       string
	Config   string
	LogLevel string
	SSHAddr  string
}

// LoadEnv loads the given .env files (".env" when none are given) into
// the process environment and reads the SAMEANIMAL_* variables. Missing
// files are not an error; variables already set are not overridden.
func LoadEnv(files ...string) (Env, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Env{}, err
		}
	}

	return Env{
		DB:       os.Getenv(EnvDB),
		Config:   os.Getenv(EnvConfig),
		LogLevel: os.Getenv(EnvLogLevel),
		SSHAddr:  os.Getenv(EnvSSHAddr),
	}, nil
}

// Or returns v, or fallback when v is empty.
func Or(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
