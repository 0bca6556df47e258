/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Package config loads the connection settings of the entitydb CLI.
//
// Settings are read in this order, later sources overriding earlier ones:
//  1. built-in defaults
//  2. the YAML file ($ENTITYDB_CONFIG, ./entitydb.yaml or an explicit path)
//  3. a .env file in the working directory, when present
//  4. ENTITYDB_* and AWS_* environment variables
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	// EnvConfigPath is the environment variable for an explicit config path
	EnvConfigPath = "ENTITYDB_CONFIG"
	// ConfigFileName is the default config file name
	ConfigFileName = "entitydb.yaml"

	DriverSQLite   = "sqlite"
	DriverMySQL    = "mysql"
	DriverDynamoDB = "dynamodb"

	DefaultDSN           = "./entitydb.sqlite3"
	DefaultSequenceTable = "entitydb_sequences"
)

// Config selects and configures the driver.
type Config struct {
	// Driver is one of sqlite, mysql or dynamodb.
	Driver string `yaml:"driver"`
	// DSN is the SQLite path or the MySQL data source name.
	DSN string `yaml:"dsn"`

	RepositoriesNamespace string `yaml:"repositories_namespace,omitempty"`
	EntitiesNamespace     string `yaml:"entities_namespace,omitempty"`

	// Parameterized binds condition values as statement parameters instead
	// of inlining them.
	Parameterized bool `yaml:"parameterized,omitempty"`
	Debug         bool `yaml:"debug,omitempty"`

	DynamoDB DynamoDBConfig `yaml:"dynamodb,omitempty"`
}

// DynamoDBConfig holds the settings of the dynamodb driver. Empty
// credentials fall back to the AWS default chain.
type DynamoDBConfig struct {
	Region        string `yaml:"region,omitempty"`
	AccessKey     string `yaml:"access_key,omitempty"`
	SecretKey     string `yaml:"secret_key,omitempty"`
	Endpoint      string `yaml:"endpoint,omitempty"`
	SequenceTable string `yaml:"sequence_table,omitempty"`
	MaxRetries    int    `yaml:"max_retries,omitempty"`
}

// DefaultConfig returns a config for a local SQLite file.
func DefaultConfig() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load reads the config file found by FindConfigPath, or starts from the
// defaults when there is none, then applies .env and the environment.
func Load() (*Config, string, error) {
	path := FindConfigPath()
	if path == "" {
		cfg := &Config{}
		if err := cfg.finish(); err != nil {
			return nil, "", err
		}
		return cfg, "", nil
	}
	return LoadFromPath(path)
}

// LoadFromPath reads the YAML file at path, then applies .env and the
// environment.
func LoadFromPath(path string) (*Config, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, path, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, path, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.finish(); err != nil {
		return nil, path, err
	}
	return &cfg, path, nil
}

func (c *Config) finish() error {
	if err := LoadEnvFile(); err != nil {
		return err
	}
	if err := c.ApplyEnv(); err != nil {
		return err
	}
	c.applyDefaults()
	return c.Validate()
}

// LoadEnvFile loads the given .env files, or ./.env, into the process
// environment without overriding variables already set. Missing files are
// ignored.
func LoadEnvFile(filenames ...string) error {
	if len(filenames) == 0 {
		filenames = []string{".env"}
	}
	for _, name := range filenames {
		if err := godotenv.Load(name); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("load %s: %w", name, err)
		}
	}
	return nil
}

// ApplyEnv overrides fields from ENTITYDB_* and AWS_* variables.
func (c *Config) ApplyEnv() error {
	setString(&c.Driver, "ENTITYDB_DRIVER")
	setString(&c.DSN, "ENTITYDB_DSN")
	setString(&c.RepositoriesNamespace, "ENTITYDB_REPOSITORIES_NAMESPACE")
	setString(&c.EntitiesNamespace, "ENTITYDB_ENTITIES_NAMESPACE")
	setString(&c.DynamoDB.Region, "AWS_REGION")
	setString(&c.DynamoDB.AccessKey, "AWS_ACCESS_KEY")
	setString(&c.DynamoDB.SecretKey, "AWS_SECRET_KEY")
	setString(&c.DynamoDB.Endpoint, "AWS_DDB_ENDPOINT")
	setString(&c.DynamoDB.SequenceTable, "AWS_DDB_SEQUENCE_TABLE")

	if err := setBool(&c.Parameterized, "ENTITYDB_PARAMETERIZED"); err != nil {
		return err
	}
	return setBool(&c.Debug, "ENTITYDB_DEBUG")
}

func (c *Config) applyDefaults() {
	if c.Driver == "" {
		c.Driver = DriverSQLite
	}
	if c.DSN == "" && c.Driver == DriverSQLite {
		c.DSN = DefaultDSN
	}
	if c.DynamoDB.SequenceTable == "" {
		c.DynamoDB.SequenceTable = DefaultSequenceTable
	}
}

// Validate checks that the selected driver has what it needs.
func (c *Config) Validate() error {
	switch c.Driver {
	case DriverSQLite, DriverMySQL:
		if c.DSN == "" {
			return fmt.Errorf("config: driver %s requires a dsn", c.Driver)
		}
	case DriverDynamoDB:
		if c.DynamoDB.Region == "" {
			return fmt.Errorf("config: driver %s requires dynamodb.region", c.Driver)
		}
		if (c.DynamoDB.AccessKey == "") != (c.DynamoDB.SecretKey == "") {
			return fmt.Errorf("config: dynamodb access_key and secret_key must be set together")
		}
		if c.DynamoDB.MaxRetries < 0 {
			return fmt.Errorf("config: dynamodb.max_retries must not be negative")
		}
	default:
		return fmt.Errorf("config: unknown driver %q", c.Driver)
	}
	return nil
}

// FindConfigPath returns $ENTITYDB_CONFIG or ./entitydb.yaml when the file
// exists, else "".
func FindConfigPath() string {
	if path := os.Getenv(EnvConfigPath); path != "" && fileExists(path) {
		return path
	}
	if fileExists(ConfigFileName) {
		return ConfigFileName
	}
	return ""
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

func setString(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		*dst = v
	}
}

func setBool(dst *bool, key string) error {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fmt.Errorf("config: %s: %w", key, err)
	}
	*dst = b
	return nil
}
