package config

import (
	"fmt"
)

// PostgresConfig represents the configuration needed to connect to a PostgreSQL database.
// URL, when set, wins over the individual fields.
type PostgresConfig struct {
	URL      string `yaml:"url"`
	Host     string `yaml:"host"`
	Port     string `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	DBName   string `yaml:"dbname"`
	SSLMode  string `yaml:"sslmode"`
}

func (pc *PostgresConfig) GetConnectionString() string {
	if pc.URL != "" {
		return pc.URL
	}
	sslMode := pc.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		pc.Host, pc.Port, pc.User, pc.Password, pc.DBName, sslMode)
}

func defaultPostgresConfig() PostgresConfig {
	return PostgresConfig{
		Host:     "localhost",
		Port:     "5432",
		User:     "postgres",
		Password: "postgres",
		DBName:   "storefront",
	}
}

func (pc *PostgresConfig) applyEnv() {
	overrideString(&pc.URL, "DATABASE_URL")
	overrideString(&pc.Host, "POSTGRES_HOST")
	overrideString(&pc.Port, "POSTGRES_PORT")
	overrideString(&pc.User, "POSTGRES_USER")
	overrideString(&pc.Password, "POSTGRES_PASSWORD")
	overrideString(&pc.DBName, "POSTGRES_NAME")
	overrideString(&pc.SSLMode, "POSTGRES_SSLMODE")
}
