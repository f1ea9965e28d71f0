package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the genosketch tool.
type Config struct {
	Sketch  SketchConfig  `yaml:"sketch"`
	Cache   CacheConfig   `yaml:"cache"`
	Scan    ScanConfig    `yaml:"scan"`
	Find    FindConfig    `yaml:"find"`
	Logging LoggingConfig `yaml:"logging"`
}

// SketchConfig holds the immutable index parameters used when a new index
// is created. Loading an existing index always takes its parameters from
// the stored metadata instead, except the k-mer size which must agree.
type SketchConfig struct {
	Width    int `yaml:"width"`
	Stages   int `yaml:"stages"`
	Buckets  int `yaml:"buckets"`
	KmerSize int `yaml:"kmer_size"`
}

// CacheConfig holds the disk-index bucket cache bound. This is a CLI-level
// convenience default only; the core index always receives an explicit
// limit.
type CacheConfig struct {
	Limit int `yaml:"limit"`
}

// ScanConfig holds the glob patterns used to discover sequence files.
type ScanConfig struct {
	Includes []string `yaml:"includes"`
	Excludes []string `yaml:"excludes"`
}

// FindConfig holds query defaults.
type FindConfig struct {
	MaxNeighbors int     `yaml:"max_neighbors"`
	MaxDistance  float64 `yaml:"max_distance"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Sketch: SketchConfig{
			Width:    1000,
			Stages:   25,
			Buckets:  512,
			KmerSize: 16,
		},
		Cache: CacheConfig{
			Limit: 256,
		},
		Scan: ScanConfig{
			Includes: []string{"**/*.fa", "**/*.fasta", "**/*.fna", "**/*.faa", "**/*.fa.gz", "**/*.fasta.gz", "**/*.fna.gz", "**/*.faa.gz"},
			Excludes: []string{"**/.genosketch/**"},
		},
		Find: FindConfig{
			MaxNeighbors: 10,
			MaxDistance:  0.5,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load loads configuration from a YAML file.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil // Return defaults if no config file
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadFromDir loads configuration from a directory (looks for genosketch.yaml).
func LoadFromDir(dir string) (*Config, error) {
	path := filepath.Join(dir, "genosketch.yaml")
	if _, err := os.Stat(path); err == nil {
		return Load(path)
	}

	path = filepath.Join(dir, ".genosketch", "config.yaml")
	if _, err := os.Stat(path); err == nil {
		return Load(path)
	}

	return DefaultConfig(), nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// IndexDir returns the path of the index directory inside dir.
func IndexDir(dir string) string {
	return filepath.Join(dir, ".genosketch", "index")
}

// CatalogPath returns the path of the genome catalog database inside dir.
func CatalogPath(dir string) string {
	return filepath.Join(dir, ".genosketch", "catalog.db")
}

// EnsureDataDir ensures the .genosketch directory exists.
func EnsureDataDir(dir string) error {
	return os.MkdirAll(filepath.Join(dir, ".genosketch"), 0755)
}
