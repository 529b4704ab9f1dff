// Package config provides configuration for kassenbuch. It loads from
// environment variables and .env files, plus an optional YAML file
// describing the register directory.
package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/vereinskasse/kassenbuch/internal/models"
)

// Config represents the application configuration.
type Config struct {
	// DBPath is the bbolt database file.
	DBPath string
	// Port is the HTTP listen port of the serve command.
	Port string
	// RegistersFile optionally points to a YAML register directory used
	// to seed new databases.
	RegistersFile string
	Debug         bool
}

// Load loads configuration from environment variables. It automatically
// loads a .env file from the current directory if available; a custom
// path may be given.
func Load(envPath ...string) (*Config, error) {
	if len(envPath) > 0 && envPath[0] != "" {
		if err := godotenv.Load(envPath[0]); err != nil {
			return nil, fmt.Errorf("failed to load .env file: %w", err)
		}
	} else {
		_ = godotenv.Load()
	}

	return &Config{
		DBPath:        getEnvOrDefault("KASSENBUCH_DB_PATH", "./data/kassenbuch.db"),
		Port:          getEnvOrDefault("PORT", "8080"),
		RegistersFile: os.Getenv("KASSENBUCH_REGISTERS_FILE"),
		Debug:         os.Getenv("DEBUG") == "true",
	}, nil
}

// registersFile is the YAML shape of a register directory file:
//
//	registers:
//	  - id: bar1
//	    name: Bar 1
type registersFile struct {
	Registers []struct {
		ID   string `yaml:"id"`
		Name string `yaml:"name"`
	} `yaml:"registers"`
}

// LoadRegisters reads the configured register directory file. It
// returns nil when no file is configured, leaving the store's defaults
// in place.
func (c *Config) LoadRegisters() ([]models.Register, error) {
	if c.RegistersFile == "" {
		return nil, nil
	}

	data, err := os.ReadFile(c.RegistersFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read registers file: %w", err)
	}

	var file registersFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse registers file: %w", err)
	}
	if len(file.Registers) == 0 {
		return nil, fmt.Errorf("registers file %s defines no registers", c.RegistersFile)
	}

	registers := make([]models.Register, 0, len(file.Registers))
	for i, r := range file.Registers {
		if r.ID == "" || r.Name == "" {
			return nil, fmt.Errorf("registers file entry %d is missing id or name", i)
		}
		registers = append(registers, models.Register{
			ID:      r.ID,
			Name:    r.Name,
			Balance: decimal.Zero,
		})
	}
	return registers, nil
}

// getEnvOrDefault returns the value of the environment variable or a
// default value if not set.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
