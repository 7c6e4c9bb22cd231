// ABOUTME: Centralized configuration for the article vector store
// ABOUTME: Loads a YAML file with defaults; secrets come from the environment
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Defaults applied when the config file is absent or leaves fields unset.
const (
	DefaultEmbeddingModel = "text-embedding-3-small"
	DefaultEncoding       = "cl100k_base"
	DefaultChunkSize      = 1000
	DefaultChunkOverlap   = 200
	DefaultDimension      = 1536
	DefaultCollection     = "articles"
	DefaultPDFRoot        = "pdf_database"
)

// Config holds all configuration for the article store.
type Config struct {
	// Embedding settings. The model and token encoding are part of the
	// index schema: changing either requires a full rebuild.
	EmbeddingModel  string `yaml:"embedding_model"`
	TokenEncoding   string `yaml:"token_encoding"`
	VectorDimension int    `yaml:"vector_dimension"`

	// Chunking settings, in tokens of the configured encoding.
	ChunkSize    int `yaml:"chunk_size"`
	ChunkOverlap int `yaml:"chunk_overlap"`

	// Paths. DBPath empty means the XDG data directory.
	PDFRoot    string `yaml:"pdf_root"`
	DBPath     string `yaml:"db_path"`
	Collection string `yaml:"collection"`

	// OCR fallback for scanned PDFs.
	DisableOCR  bool `yaml:"disable_ocr"`
	OCRMaxChars int  `yaml:"ocr_max_chars"`
}

// OpenAIKey reads the API key from the environment. It is deliberately not
// part of the YAML file.
func (c *Config) OpenAIKey() string {
	return os.Getenv("OPENAI_API_KEY")
}

// DatabasePath resolves the sqlite file path, defaulting to the XDG data
// directory with one file per collection.
func (c *Config) DatabasePath() string {
	if c.DBPath != "" {
		return c.DBPath
	}
	return filepath.Join(DefaultDataDir(), c.Collection+".db")
}

// DefaultDataDir returns the default data directory following the XDG spec.
func DefaultDataDir() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return ".local/share/articlestore"
		}
		dataHome = filepath.Join(homeDir, ".local", "share")
	}
	return filepath.Join(dataHome, "articlestore")
}

// Load reads a config from path. A missing file is not an error: defaults
// are returned so the binary works out of the box.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return defaultConfig(), nil
		}
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	// Unmarshal over a pre-populated struct: fields absent from the YAML
	// keep their defaults, while an explicit zero (e.g. chunk_overlap: 0)
	// stays zero.
	cfg := defaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	return cfg, cfg.Validate()
}

// LoadDefault tries ./articlestore.yaml first, then
// ~/.config/articlestore/config.yaml, and falls back to defaults.
func LoadDefault() (*Config, error) {
	if _, err := os.Stat("articlestore.yaml"); err == nil {
		return Load("articlestore.yaml")
	}

	home, err := os.UserHomeDir()
	if err == nil {
		userPath := filepath.Join(home, ".config", "articlestore", "config.yaml")
		if _, err := os.Stat(userPath); err == nil {
			return Load(userPath)
		}
	}

	return defaultConfig(), nil
}

// Validate checks the chunking and dimension settings.
func (c *Config) Validate() error {
	if c.ChunkSize <= 0 {
		return fmt.Errorf("chunk_size must be positive, got %d", c.ChunkSize)
	}
	if c.ChunkOverlap < 0 || c.ChunkOverlap >= c.ChunkSize {
		return fmt.Errorf("chunk_overlap must be in [0, chunk_size), got %d", c.ChunkOverlap)
	}
	if c.VectorDimension <= 0 {
		return fmt.Errorf("vector_dimension must be positive, got %d", c.VectorDimension)
	}
	if c.OCRMaxChars < 0 {
		return fmt.Errorf("ocr_max_chars must not be negative, got %d", c.OCRMaxChars)
	}
	return nil
}

func defaultConfig() *Config {
	return &Config{
		EmbeddingModel:  DefaultEmbeddingModel,
		TokenEncoding:   DefaultEncoding,
		VectorDimension: DefaultDimension,
		ChunkSize:       DefaultChunkSize,
		ChunkOverlap:    DefaultChunkOverlap,
		PDFRoot:         DefaultPDFRoot,
		Collection:      DefaultCollection,
	}
}
