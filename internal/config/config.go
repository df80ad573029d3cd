// Package config provides functionality for managing configuration options
// for the application using command-line flags, an optional JSON config
// file and environment variables, applied in that order.
package config

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/caarlos0/env/v11"
)

// Storage backends accepted in Options.Storage.
const (
	StorageMemory   = "memory"
	StorageBolt     = "bolt"
	StorageSQLite   = "sqlite"
	StoragePostgres = "postgres"
)

// Options holds the configuration values for the application.
type Options struct {
	// Port defines the server's listening address (ip:port).
	Port string `json:"server_address" env:"SERVER_ADDRESS"`

	// Storage selects the key-value backend.
	Storage string `json:"storage" env:"STORAGE"`

	// DatabaseDSN holds the connection string for the sqlite and postgres backends.
	DatabaseDSN string `json:"database_dsn" env:"DATABASE_DSN"`

	// BoltPath is the database file of the bolt backend.
	BoltPath string `json:"bolt_path" env:"BOLT_PATH"`

	// LogLevel is a zap level name.
	LogLevel string `json:"log_level" env:"LOG_LEVEL"`

	// TLSCert and TLSKey enable HTTPS when both are set.
	TLSCert string `json:"tls_cert" env:"TLS_CERT"`
	TLSKey  string `json:"tls_key" env:"TLS_KEY"`

	// Config is the path to the Config file.
	Config string `json:"-" env:"CONFIG"`
}

// Parse parses os.Args and the process environment. It exits the process
// on invalid configuration.
func Parse() *Options {
	opts, err := Load(os.Args[1:], nil)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	return opts
}

// Load builds Options from args, the config file they point to, and the
// environment. A nil environ means the process environment.
func Load(args []string, environ map[string]string) (*Options, error) {
	options := &Options{}

	fs := flag.NewFlagSet("server", flag.ContinueOnError)
	fs.StringVar(&options.Port, "a", "localhost:8080", "run on ip:port server")
	fs.StringVar(&options.Storage, "s", StorageMemory, "storage backend: memory, bolt, sqlite, postgres")
	fs.StringVar(&options.DatabaseDSN, "d", "", "db address")
	fs.StringVar(&options.BoltPath, "b", "readsync.db", "bolt database file")
	fs.StringVar(&options.LogLevel, "l", "info", "log level")
	fs.StringVar(&options.TLSCert, "tls-cert", "", "TLS certificate file")
	fs.StringVar(&options.TLSKey, "tls-key", "", "TLS key file")
	fs.StringVar(&options.Config, "config", "config.json", "path to config file")
	fs.StringVar(&options.Config, "c", "config.json", "path to config file (shorthand)")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	envOpts := env.Options{}
	if environ != nil {
		envOpts.Environment = environ
	}

	// The config file location itself may come from the environment.
	var location struct {
		Config string `env:"CONFIG"`
	}
	if err := env.ParseWithOptions(&location, envOpts); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if location.Config != "" {
		options.Config = location.Config
	}

	if options.Config != "" {
		data, err := os.ReadFile(options.Config)
		switch {
		case err == nil:
			if err := json.Unmarshal(data, options); err != nil {
				return nil, fmt.Errorf("parse config file: %w", err)
			}
		case !errors.Is(err, os.ErrNotExist):
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	if err := env.ParseWithOptions(options, envOpts); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if err := options.Validate(); err != nil {
		return nil, err
	}
	return options, nil
}

// Validate checks that the selected backend has what it needs.
func (o *Options) Validate() error {
	switch o.Storage {
	case StorageMemory:
	case StorageBolt:
		if o.BoltPath == "" {
			return errors.New("bolt storage requires a database path")
		}
	case StorageSQLite, StoragePostgres:
		if o.DatabaseDSN == "" {
			return fmt.Errorf("%s storage requires a database DSN", o.Storage)
		}
	default:
		return fmt.Errorf("unknown storage %q", o.Storage)
	}
	if (o.TLSCert == "") != (o.TLSKey == "") {
		return errors.New("tls cert and key must be set together")
	}
	return nil
}
