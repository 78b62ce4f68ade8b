package config

import (
	"fmt"
	"log"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	defaultPort            = "8080"
	defaultAPIBaseURL      = "http://localhost:5000"
	defaultUploadMaxSizeMB = 5
)

type Config struct {
	Port       string `yaml:"port"`
	APIBaseURL string `yaml:"api_base_url"`
	// DocumentsBaseURL hosts /uploads/; defaults to APIBaseURL.
	DocumentsBaseURL string        `yaml:"documents_base_url"`
	UploadMaxSizeMB  int           `yaml:"upload_max_size_mb"`
	BackendTimeout   time.Duration `yaml:"backend_timeout"` // 0 keeps the transport default
	SwaggerHost      string        `yaml:"swagger_host"`
}

// LoadConfig reads .env (here or two levels up), then the optional YAML file
// named by CONFIG_FILE, then the environment. Later sources win.
func LoadConfig() (*Config, error) {
	err := godotenv.Load()
	if err != nil {
		log.Printf("Warning: Error loading .env file: %v", err)
		log.Println("Attempting to load from parent directory...")
		err = godotenv.Load("../../.env")
		if err != nil {
			log.Println("Warning: Could not load .env file, using environment variables")
		}
	}

	cfg := &Config{}
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		cfg, err = Load(path)
		if err != nil {
			return nil, err
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	return cfg, nil
}

// Load reads a YAML config file, replacing ${VAR} references with
// environment values first.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal([]byte(expandEnvVars(string(b))), &cfg); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	return &cfg, nil
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return ":" + c.Port
}

func (c *Config) applyEnv() error {
	c.Port = envOrDefault("PORT", c.Port)
	c.APIBaseURL = envOrDefault("API_BASE_URL", c.APIBaseURL)
	c.DocumentsBaseURL = envOrDefault("DOCUMENTS_BASE_URL", c.DocumentsBaseURL)
	c.SwaggerHost = envOrDefault("SWAGGER_HOST", c.SwaggerHost)

	if v := os.Getenv("UPLOAD_MAX_SIZE_MB"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return fmt.Errorf("UPLOAD_MAX_SIZE_MB must be a positive integer, got %q", v)
		}
		c.UploadMaxSizeMB = n
	}
	if v := os.Getenv("BACKEND_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d < 0 {
			return fmt.Errorf("BACKEND_TIMEOUT must be a duration like 30s, got %q", v)
		}
		c.BackendTimeout = d
	}
	return nil
}

func (c *Config) applyDefaults() {
	if c.Port == "" {
		c.Port = defaultPort
	}
	if c.APIBaseURL == "" {
		c.APIBaseURL = defaultAPIBaseURL
	}
	c.APIBaseURL = strings.TrimRight(c.APIBaseURL, "/")
	if c.DocumentsBaseURL == "" {
		c.DocumentsBaseURL = c.APIBaseURL
	}
	if c.UploadMaxSizeMB <= 0 {
		c.UploadMaxSizeMB = defaultUploadMaxSizeMB
	}
	if c.SwaggerHost == "" {
		c.SwaggerHost = "localhost:" + c.Port
	}
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

var envVarRef = regexp.MustCompile(`\$\{([^}]+)\}`)

// expandEnvVars replaces ${NAME}; unset variables are left as written.
func expandEnvVars(content string) string {
	return envVarRef.ReplaceAllStringFunc(content, func(match string) string {
		if value := os.Getenv(match[2 : len(match)-1]); value != "" {
			return value
		}
		return match
	})
}
