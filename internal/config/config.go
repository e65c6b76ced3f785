package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

type Serial struct {
	Device string `yaml:"device"` // e.g. /dev/ttyACM0
	Baud   int    `yaml:"baud"`   // e.g. 57600
}

type SPI struct {
	Port string `yaml:"port,omitempty"` // spireg name; empty = first available
}

type Config struct {
	Driver string `yaml:"driver"` // "spi" | "fake"
	Seed   int64  `yaml:"seed"`   // random stream seed
	Debug  bool   `yaml:"debug"`

	Serial Serial `yaml:"serial"`
	SPI    SPI    `yaml:"spi,omitempty"`
}

func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

func Save(path string, c *Config) error {
	b, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0644)
}
