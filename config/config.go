package config

import (
	"bytes"
	_ "embed"
	"fmt"

	"github.com/spf13/viper"
)

//go:embed config.yml
var embeddedConfig []byte

type Config struct {
	Mode     string `mapstructure:"mode"`
	Pipeline struct {
		Destinations  []string `mapstructure:"destinations"`
		Workers       int      `mapstructure:"workers"`
		BatchSize     int      `mapstructure:"batchSize"`
		RetentionDays int      `mapstructure:"retentionDays"`
	} `mapstructure:"pipeline"`
	Enrichment struct {
		EmbeddingModel    string  `mapstructure:"embeddingModel"`
		RequestsPerSecond float64 `mapstructure:"requestsPerSecond"`
		GeocodeUserAgent  string  `mapstructure:"geocodeUserAgent"`
		GeocodeEnabled    bool    `mapstructure:"geocodeEnabled"`
	} `mapstructure:"enrichment"`
	Repositories struct {
		Postgres struct {
			Host     string `mapstructure:"host"`
			Password string `mapstructure:"password"`
			Port     string `mapstructure:"port"`
			Username string `mapstructure:"username"`
			DB       string `mapstructure:"db"`
			SSLMode  string `mapstructure:"sslmode"`
		} `mapstructure:"postgres"`
	} `mapstructure:"repositories"`
	Ops struct {
		Port string `mapstructure:"port"`
	} `mapstructure:"ops"`
}

func InitConfig() (Config, error) {
	var config Config
	v := viper.New()

	// Add file-based config paths
	v.AddConfigPath(".")
	v.AddConfigPath("config")
	v.AddConfigPath("/app/config")

	v.SetConfigName("config")
	v.SetConfigType("yml")

	// Try to load file-based config
	err := v.ReadInConfig()
	if err != nil {
		fmt.Printf("Warning: Failed to find file-based config: %s. Falling back to embedded config.\n", err)
		if err = v.ReadConfig(bytes.NewReader(embeddedConfig)); err != nil {
			return Config{}, fmt.Errorf("failed to read embedded config: %s", err)
		}
	}

	// Unmarshal the config into the Config struct
	if err = v.Unmarshal(&config); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %s", err)
	}
	return config, nil
}
