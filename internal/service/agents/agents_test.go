package agents

import (
    "context"
    "encoding/json"
    "net/http"
    "net/http/httptest"
    "strings"
    "sync/atomic"
    "testing"
    "time"

    "FinVoice/internal/domain/models"
    "FinVoice/pkg/config"
    xhttp "FinVoice/pkg/http"
)

func testConfig(url string) *config.Config {
    cfg := &config.Config{}
    cfg.Agents.MarketDataURL = url
    cfg.Agents.NewsURL = url
    cfg.Agents.RetrievalURL = url
    cfg.Agents.AnalysisURL = url
    cfg.Agents.GenerationURL = url
    cfg.Agents.SpeechURL = url
    cfg.Agents.MarketDataTimeout = 2 * time.Second
    cfg.Agents.NewsTimeout = 2 * time.Second
    cfg.Agents.RetrievalTimeout = 2 * time.Second
    cfg.Agents.AnalysisTimeout = 2 * time.Second
    cfg.Agents.GenerationTimeout = 2 * time.Second
    cfg.Agents.SpeechTimeout = 2 * time.Second
    cfg.Agents.HealthTimeout = time.Second
    cfg.Agents.RetryAttempts = 1
    cfg.SymbolSearch.URL = url
    cfg.SymbolSearch.Timeout = 2 * time.Second
    return cfg
}

func TestMarketClientDecodesUnion(t *testing.T) {
    srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
        if r.URL.Path != "/run" {
            t.Errorf("unexpected path %s", r.URL.Path)
        }
        var body map[string][]string
        if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
            t.Errorf("decode request: %v", err)
        }
        w.Header().Set("Content-Type", "application/json")
        w.Write([]byte(`{
            "AAPL": [{"Date": "2026-08-28", "Open": 1, "High": 2, "Low": 0.5, "Close": 1.5, "Volume": 100}],
            "TSM": {"error": "quota exceeded"}
        }`))
    }))
    defer srv.Close()

    c := NewMarketClient(testConfig(srv.URL), xhttp.NewClient(), nil)
    data, err := c.Fetch(context.Background(), []string{"AAPL", "TSM"})
    if err != nil {
        t.Fatalf("unexpected error: %v", err)
    }
    if !data["AAPL"].Usable() {
        t.Fatalf("AAPL series should be usable")
    }
    if data["TSM"].Usable() || data["TSM"].Err != "quota exceeded" {
        t.Fatalf("TSM series = %+v", data["TSM"])
    }
}

func TestNewsClientErrorPayload(t *testing.T) {
    srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
        w.Header().Set("Content-Type", "application/json")
        w.Write([]byte(`{"error": "scraper blocked"}`))
    }))
    defer srv.Close()

    c := NewNewsClient(testConfig(srv.URL), xhttp.NewClient(), nil)
    _, err := c.Fetch(context.Background(), []string{"AAPL"})
    if err == nil || !strings.Contains(err.Error(), "scraper blocked") {
        t.Fatalf("expected news agent error, got %v", err)
    }
}

func TestRetrievalClientQuery(t *testing.T) {
    srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
        if r.URL.Path != "/query" {
            t.Errorf("unexpected path %s", r.URL.Path)
        }
        var body map[string]interface{}
        if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
            t.Errorf("decode request: %v", err)
        }
        for _, key := range []string{"query", "tickers", "user_urls"} {
            if _, ok := body[key]; !ok {
                t.Errorf("request missing %q", key)
            }
        }
        w.Header().Set("Content-Type", "application/json")
        w.Write([]byte(`{"chunks": [{"snippet": "filing excerpt", "url": "https://docs.example.com"}]}`))
    }))
    defer srv.Close()

    c := NewRetrievalClient(testConfig(srv.URL), xhttp.NewClient(), nil)
    res, err := c.Query(context.Background(), "apple filings", []string{"AAPL"}, []string{"https://docs.example.com"})
    if err != nil {
        t.Fatalf("unexpected error: %v", err)
    }
    if len(res.Chunks) != 1 || res.Chunks[0].Snippet != "filing excerpt" {
        t.Fatalf("chunks = %+v", res.Chunks)
    }
}

func TestRetrievalClientHealth(t *testing.T) {
    srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
        if r.URL.Path != "/health" {
            t.Errorf("unexpected path %s", r.URL.Path)
        }
        w.Header().Set("Content-Type", "application/json")
        w.Write([]byte(`{"status": "ok"}`))
    }))
    defer srv.Close()

    c := NewRetrievalClient(testConfig(srv.URL), xhttp.NewClient(), nil)
    if err := c.Health(context.Background()); err != nil {
        t.Fatalf("unexpected error: %v", err)
    }
}

func TestGenerationClientMissingResponseKey(t *testing.T) {
    srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
        w.Header().Set("Content-Type", "application/json")
        w.Write([]byte(`{"detail": "internal error"}`))
    }))
    defer srv.Close()

    c := NewGenerationClient(testConfig(srv.URL), xhttp.NewClient(), nil)
    _, err := c.Generate(context.Background(), "prompt", nil)
    if err == nil || !strings.Contains(err.Error(), "response key missing") {
        t.Fatalf("expected missing key error, got %v", err)
    }
}

func TestGenerationClient(t *testing.T) {
    srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
        w.Header().Set("Content-Type", "application/json")
        w.Write([]byte(`{"response": "Apple had a strong week."}`))
    }))
    defer srv.Close()

    c := NewGenerationClient(testConfig(srv.URL), xhttp.NewClient(), nil)
    narrative, err := c.Generate(context.Background(), "prompt", nil)
    if err != nil {
        t.Fatalf("unexpected error: %v", err)
    }
    if narrative != "Apple had a strong week." {
        t.Fatalf("narrative = %q", narrative)
    }
}

func TestSpeechClient(t *testing.T) {
    srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
        w.Header().Set("Content-Type", "application/json")
        w.Write([]byte(`{"audio_base64": "UklGRg=="}`))
    }))
    defer srv.Close()

    c := NewSpeechClient(testConfig(srv.URL), xhttp.NewClient(), nil)
    audio, err := c.Speak(context.Background(), "hello")
    if err != nil {
        t.Fatalf("unexpected error: %v", err)
    }
    if audio != "UklGRg==" {
        t.Fatalf("audio = %q", audio)
    }
}

func TestSpeechClientMissingAudio(t *testing.T) {
    srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
        w.Header().Set("Content-Type", "application/json")
        w.Write([]byte(`{}`))
    }))
    defer srv.Close()

    c := NewSpeechClient(testConfig(srv.URL), xhttp.NewClient(), nil)
    if _, err := c.Speak(context.Background(), "hello"); err == nil {
        t.Fatalf("expected error for missing audio")
    }
}

func TestSymbolSearchClient(t *testing.T) {
    srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
        if got := r.URL.Query().Get("q"); got != "broadcom" {
            t.Errorf("q = %q", got)
        }
        w.Header().Set("Content-Type", "application/json")
        w.Write([]byte(`{"quotes": [{"symbol": "AVGO"}, {"symbol": "AVGOP"}]}`))
    }))
    defer srv.Close()

    c := NewSymbolSearchClient(testConfig(srv.URL), xhttp.NewClient(), nil)
    sym, err := c.Search(context.Background(), "broadcom")
    if err != nil {
        t.Fatalf("unexpected error: %v", err)
    }
    if sym != "AVGO" {
        t.Fatalf("symbol = %q", sym)
    }
}

func TestSymbolSearchClientNoMatch(t *testing.T) {
    srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
        w.Header().Set("Content-Type", "application/json")
        w.Write([]byte(`{"quotes": []}`))
    }))
    defer srv.Close()

    c := NewSymbolSearchClient(testConfig(srv.URL), xhttp.NewClient(), nil)
    sym, err := c.Search(context.Background(), "nonsense")
    if err != nil {
        t.Fatalf("no match must not error: %v", err)
    }
    if sym != "" {
        t.Fatalf("symbol = %q", sym)
    }
}

func TestAnalysisClientRetriesTransportFailure(t *testing.T) {
    var hits int32
    srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
        if atomic.AddInt32(&hits, 1) == 1 {
            // Drop the connection so the client sees a transport error.
            hj, ok := w.(http.Hijacker)
            if !ok {
                t.Fatalf("hijacking not supported")
            }
            conn, _, err := hj.Hijack()
            if err != nil {
                t.Fatalf("hijack: %v", err)
            }
            conn.Close()
            return
        }
        w.Header().Set("Content-Type", "application/json")
        w.Write([]byte(`{"AAPL": {"trend": "up"}}`))
    }))
    defer srv.Close()

    cfg := testConfig(srv.URL)
    cfg.Agents.RetryAttempts = 3
    cfg.Agents.RetryDelay = time.Millisecond

    c := NewAnalysisClient(cfg, xhttp.NewClient(), nil)
    data, err := c.Analyze(context.Background(), nil, models.NewsData{}, []string{"AAPL"}, "query")
    if err != nil {
        t.Fatalf("retry did not recover: %v", err)
    }
    if _, ok := data["AAPL"]; !ok {
        t.Fatalf("analysis payload missing: %+v", data)
    }
    if atomic.LoadInt32(&hits) != 2 {
        t.Fatalf("expected 2 attempts, got %d", hits)
    }
}
