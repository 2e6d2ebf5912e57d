package config

import (
    "os"
    "path/filepath"
    "strings"
    "testing"
    "time"
)

const minimalYAML = `
environment: test
agents:
  market_data_url: http://localhost:8001
  news_url: http://localhost:8002
  retrieval_url: http://localhost:8003
  analysis_url: http://localhost:8004
  generation_url: http://localhost:8005
  speech_url: http://localhost:8006
symbol_search:
  url: https://query2.finance.yahoo.com/v1/finance/search
`

func writeConfig(t *testing.T, body string) string {
    t.Helper()
    path := filepath.Join(t.TempDir(), "config.yaml")
    if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
        t.Fatalf("write config: %v", err)
    }
    return path
}

func TestLoadAppliesDefaults(t *testing.T) {
    cfg, err := Load(writeConfig(t, minimalYAML))
    if err != nil {
        t.Fatalf("load: %v", err)
    }
    if cfg.Server.Port != 8000 {
        t.Fatalf("port = %d", cfg.Server.Port)
    }
    if cfg.Agents.NewsTimeout != 30*time.Second {
        t.Fatalf("news timeout = %v", cfg.Agents.NewsTimeout)
    }
    if cfg.Agents.RetryAttempts != 3 || cfg.Agents.RetryDelay != 2*time.Second {
        t.Fatalf("retry = %d/%v", cfg.Agents.RetryAttempts, cfg.Agents.RetryDelay)
    }
    if cfg.SymbolSearch.MaxPhrases != 8 || cfg.SymbolSearch.CacheTTL != 6*time.Hour {
        t.Fatalf("symbol search defaults wrong")
    }
}

func TestLoadRejectsMissingAgentURL(t *testing.T) {
    body := `
environment: test
agents:
  market_data_url: http://localhost:8001
`
    if _, err := Load(writeConfig(t, body)); err == nil {
        t.Fatalf("expected validation error")
    }
}

func TestLoadRequiresAnalysisURL(t *testing.T) {
    body := `
environment: test
agents:
  market_data_url: http://localhost:8001
  news_url: http://localhost:8002
  retrieval_url: http://localhost:8003
  generation_url: http://localhost:8005
  speech_url: http://localhost:8006
symbol_search:
  url: https://query2.finance.yahoo.com/v1/finance/search
`
    _, err := Load(writeConfig(t, body))
    if err == nil || !strings.Contains(err.Error(), "analysis_url") {
        t.Fatalf("expected analysis_url error, got %v", err)
    }
}

func TestLoadWithEnvOverrides(t *testing.T) {
    t.Setenv("MARKET_DATA_URL", "http://override:9001")
    t.Setenv("REDIS_ADDR", "redis:6379")
    t.Setenv("KAFKA_BROKERS", "k1:9092,k2:9092")

    cfg, err := LoadWithEnv(writeConfig(t, minimalYAML))
    if err != nil {
        t.Fatalf("load: %v", err)
    }
    if cfg.Agents.MarketDataURL != "http://override:9001" {
        t.Fatalf("market url = %q", cfg.Agents.MarketDataURL)
    }
    if !cfg.Cache.Redis.Enabled || cfg.Cache.Redis.Addr != "redis:6379" {
        t.Fatalf("redis = %+v", cfg.Cache.Redis)
    }
    if len(cfg.Kafka.Brokers) != 2 {
        t.Fatalf("brokers = %v", cfg.Kafka.Brokers)
    }
}
