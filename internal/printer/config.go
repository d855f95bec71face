package printer

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the printer inventory file.
type Config struct {
	Printers []PrinterConfig `yaml:"printers"`
}

// PrinterConfig declares one printer.
type PrinterConfig struct {
	ID         string `yaml:"id"`
	Name       string `yaml:"name"`
	Type       string `yaml:"type"`
	Address    string `yaml:"address"`
	Port       int    `yaml:"port"`
	PaperWidth int    `yaml:"paper_width"` // 58 or 80 (mm)
}

// LoadConfig reads and validates the YAML inventory at path.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read printer config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse printer config %s: %w", path, err)
	}
	seen := make(map[string]bool, len(cfg.Printers))
	for i := range cfg.Printers {
		p := &cfg.Printers[i]
		if p.ID == "" {
			return nil, fmt.Errorf("printer config: entry %d has no id", i)
		}
		if seen[p.ID] {
			return nil, fmt.Errorf("printer config: duplicate id %q", p.ID)
		}
		seen[p.ID] = true
		if p.Type == "" {
			p.Type = "network"
		}
		if p.Type != "network" {
			return nil, fmt.Errorf("printer config: %s: unsupported type %q", p.ID, p.Type)
		}
		if p.Address == "" {
			return nil, fmt.Errorf("printer config: %s: address required", p.ID)
		}
		if p.Port == 0 {
			p.Port = 9100
		}
		if p.PaperWidth == 0 {
			p.PaperWidth = 58
		}
	}
	return &cfg, nil
}
