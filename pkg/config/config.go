package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Environment string `yaml:"environment"`
	Server      struct {
		Port            int           `yaml:"port"`
		ReadTimeout     time.Duration `yaml:"read_timeout"`
		WriteTimeout    time.Duration `yaml:"write_timeout"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	} `yaml:"server"`
	Metrics struct {
		Enabled bool   `yaml:"enabled"`
		Path    string `yaml:"path"`
	} `yaml:"metrics"`
	Agents struct {
		MarketDataURL string `yaml:"market_data_url"`
		NewsURL       string `yaml:"news_url"`
		RetrievalURL  string `yaml:"retrieval_url"`
		AnalysisURL   string `yaml:"analysis_url"`
		GenerationURL string `yaml:"generation_url"`
		SpeechURL     string `yaml:"speech_url"`

		MarketDataTimeout time.Duration `yaml:"market_data_timeout"`
		NewsTimeout       time.Duration `yaml:"news_timeout"`
		RetrievalTimeout  time.Duration `yaml:"retrieval_timeout"`
		AnalysisTimeout   time.Duration `yaml:"analysis_timeout"`
		GenerationTimeout time.Duration `yaml:"generation_timeout"`
		SpeechTimeout     time.Duration `yaml:"speech_timeout"`
		HealthTimeout     time.Duration `yaml:"health_timeout"`

		RetryAttempts int           `yaml:"retry_attempts"`
		RetryDelay    time.Duration `yaml:"retry_delay"`
	} `yaml:"agents"`
	SymbolSearch struct {
		URL           string        `yaml:"url"`
		Timeout       time.Duration `yaml:"timeout"`
		MaxPhrases    int           `yaml:"max_phrases"`
		RateCapacity  float64       `yaml:"rate_capacity"`
		RatePerSecond float64       `yaml:"rate_per_second"`
		CacheTTL      time.Duration `yaml:"cache_ttl"`
	} `yaml:"symbol_search"`
	Cache struct {
		Redis struct {
			Enabled  bool   `yaml:"enabled"`
			Addr     string `yaml:"addr"`
			Password string `yaml:"password"`
			DB       int    `yaml:"db"`
		} `yaml:"redis"`
	} `yaml:"cache"`
	Kafka struct {
		Brokers      []string      `yaml:"brokers"`
		Topic        string        `yaml:"topic"`
		RequiredAcks int           `yaml:"required_acks"`
		Compression  string        `yaml:"compression"`
		WriteTimeout time.Duration `yaml:"write_timeout"`
		Async        bool          `yaml:"async"`
	} `yaml:"kafka"`
}

// Load reads and parses a YAML configuration file.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	c.applyDefaults()

	// Validate required fields
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &c, nil
}

// LoadWithEnv loads config from YAML and overrides with environment variables.
func LoadWithEnv(path string) (*Config, error) {
	c, err := Load(path)
	if err != nil {
		return nil, err
	}

	// Override with environment variables
	if v := os.Getenv("MARKET_DATA_URL"); v != "" {
		c.Agents.MarketDataURL = v
	}
	if v := os.Getenv("NEWS_URL"); v != "" {
		c.Agents.NewsURL = v
	}
	if v := os.Getenv("RETRIEVAL_URL"); v != "" {
		c.Agents.RetrievalURL = v
	}
	if v := os.Getenv("ANALYSIS_URL"); v != "" {
		c.Agents.AnalysisURL = v
	}
	if v := os.Getenv("GENERATION_URL"); v != "" {
		c.Agents.GenerationURL = v
	}
	if v := os.Getenv("SPEECH_URL"); v != "" {
		c.Agents.SpeechURL = v
	}
	if v := os.Getenv("SYMBOL_SEARCH_URL"); v != "" {
		c.SymbolSearch.URL = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		c.Cache.Redis.Enabled = true
		c.Cache.Redis.Addr = v
	}
	if v := os.Getenv("KAFKA_BROKERS"); v != "" {
		c.Kafka.Brokers = strings.Split(v, ",")
	}
	if v := os.Getenv("KAFKA_TOPIC"); v != "" {
		c.Kafka.Topic = v
	}

	return c, nil
}

func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 8000
	}
	if c.Agents.MarketDataTimeout == 0 {
		c.Agents.MarketDataTimeout = 10 * time.Second
	}
	if c.Agents.NewsTimeout == 0 {
		c.Agents.NewsTimeout = 30 * time.Second
	}
	if c.Agents.RetrievalTimeout == 0 {
		c.Agents.RetrievalTimeout = 10 * time.Second
	}
	if c.Agents.AnalysisTimeout == 0 {
		c.Agents.AnalysisTimeout = 10 * time.Second
	}
	if c.Agents.GenerationTimeout == 0 {
		c.Agents.GenerationTimeout = 20 * time.Second
	}
	if c.Agents.SpeechTimeout == 0 {
		c.Agents.SpeechTimeout = 15 * time.Second
	}
	if c.Agents.HealthTimeout == 0 {
		c.Agents.HealthTimeout = 3 * time.Second
	}
	if c.Agents.RetryAttempts == 0 {
		c.Agents.RetryAttempts = 3
	}
	if c.Agents.RetryDelay == 0 {
		c.Agents.RetryDelay = 2 * time.Second
	}
	if c.SymbolSearch.Timeout == 0 {
		c.SymbolSearch.Timeout = 5 * time.Second
	}
	if c.SymbolSearch.MaxPhrases == 0 {
		c.SymbolSearch.MaxPhrases = 8
	}
	if c.SymbolSearch.RateCapacity == 0 {
		c.SymbolSearch.RateCapacity = 10
	}
	if c.SymbolSearch.RatePerSecond == 0 {
		c.SymbolSearch.RatePerSecond = 5
	}
	if c.SymbolSearch.CacheTTL == 0 {
		c.SymbolSearch.CacheTTL = 6 * time.Hour
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Environment == "" {
		return fmt.Errorf("environment is required")
	}
	if c.Agents.MarketDataURL == "" {
		return fmt.Errorf("agents.market_data_url is required")
	}
	if c.Agents.NewsURL == "" {
		return fmt.Errorf("agents.news_url is required")
	}
	if c.Agents.RetrievalURL == "" {
		return fmt.Errorf("agents.retrieval_url is required")
	}
	if c.Agents.AnalysisURL == "" {
		return fmt.Errorf("agents.analysis_url is required")
	}
	if c.Agents.GenerationURL == "" {
		return fmt.Errorf("agents.generation_url is required")
	}
	if c.Agents.SpeechURL == "" {
		return fmt.Errorf("agents.speech_url is required")
	}
	if c.SymbolSearch.URL == "" {
		return fmt.Errorf("symbol_search.url is required")
	}
	return nil
}
