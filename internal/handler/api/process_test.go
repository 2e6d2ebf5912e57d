package api

import (
    "context"
    "encoding/json"
    "fmt"
    "net/http"
    "net/http/httptest"
    "strings"
    "sync/atomic"
    "testing"

    "github.com/labstack/echo/v4"

    "FinVoice/internal/domain/models"
    "FinVoice/internal/service/extractor"
    "FinVoice/internal/usecase"
    xhttp "FinVoice/pkg/http"
    xlogger "FinVoice/pkg/logger"
)

func testLogger(t *testing.T) *xlogger.Logger {
    t.Helper()
    l, err := xlogger.New(&xlogger.Config{Level: "error", Format: "json", Output: "stderr"})
    if err != nil {
        t.Fatalf("logger: %v", err)
    }
    return l
}

type stubMarket struct{ data models.MarketData }

func (s stubMarket) Fetch(context.Context, []string) (models.MarketData, error) {
    return s.data, nil
}

type stubNews struct{}

func (stubNews) Fetch(context.Context, []string) (models.NewsData, error) {
    return models.NewsData{}, nil
}

type stubRetrieval struct{ healthErr error }

func (stubRetrieval) Query(context.Context, string, []string, []string) (models.RetrievalResult, error) {
    return models.RetrievalResult{}, nil
}

func (s stubRetrieval) Health(context.Context) error { return s.healthErr }

type stubAnalysis struct{}

func (stubAnalysis) Analyze(context.Context, models.MarketData, models.NewsData, []string, string) (models.AnalysisData, error) {
    return nil, nil
}

type stubGeneration struct{ narrative string }

func (s stubGeneration) Generate(context.Context, string, models.AnalysisData) (string, error) {
    return s.narrative, nil
}

type stubSpeech struct{ calls int32 }

func (s *stubSpeech) Speak(context.Context, string) (string, error) {
    atomic.AddInt32(&s.calls, 1)
    return "UklGRg==", nil
}

// newHandler builds a handler over stub collaborators. A nil pipeline
// logger makes the pipeline fault on first use, standing in for any
// unexpected internal failure.
func newHandler(t *testing.T, pipelineLogger *xlogger.Logger, healthErr error) *AssistantHandler {
    t.Helper()
    logger := testLogger(t)
    market := stubMarket{data: models.MarketData{
        "AAPL": {Candles: []models.Candle{{Date: "2026-08-28", Close: 1.5}}},
    }}
    retrieval := stubRetrieval{healthErr: healthErr}
    dispatcher := usecase.NewDispatcher(market, stubNews{}, retrieval, logger)
    pipeline := usecase.NewPipeline(
        extractor.New(nil, nil),
        dispatcher,
        stubAnalysis{},
        stubGeneration{narrative: "Apple looks healthy."},
        &stubSpeech{},
        nil,
        nil,
        pipelineLogger,
    )
    return NewAssistantHandler(logger, pipeline, retrieval)
}

func postProcess(t *testing.T, h *AssistantHandler, body string) (*httptest.ResponseRecorder, error) {
    t.Helper()
    e := echo.New()
    req := httptest.NewRequest(http.MethodPost, "/process", strings.NewReader(body))
    req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
    rec := httptest.NewRecorder()
    return rec, h.Process(e.NewContext(req, rec))
}

func TestProcessEndpoint(t *testing.T) {
    h := newHandler(t, testLogger(t), nil)
    rec, err := postProcess(t, h, `{"query": "how is apple stock doing"}`)
    if err != nil {
        t.Fatalf("handler error: %v", err)
    }
    if rec.Code != http.StatusOK {
        t.Fatalf("status = %d", rec.Code)
    }
    var resp models.FinalResponse
    if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
        t.Fatalf("decode: %v", err)
    }
    if resp.Narrative != "Apple looks healthy." {
        t.Fatalf("narrative = %q", resp.Narrative)
    }
    if resp.AudioBase64 == nil {
        t.Fatalf("audio missing")
    }
}

func TestProcessEndpointRejectsOversizedQuery(t *testing.T) {
    h := newHandler(t, testLogger(t), nil)
    long := strings.Repeat("a", 2001)
    rec, err := postProcess(t, h, fmt.Sprintf(`{"query": %q}`, long))
    if err != nil {
        t.Fatalf("handler error: %v", err)
    }
    var envelope xhttp.APIResponse
    if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
        t.Fatalf("decode: %v", err)
    }
    if envelope.Status != http.StatusBadRequest {
        t.Fatalf("envelope status = %d", envelope.Status)
    }
}

func TestProcessEndpointContainsPanic(t *testing.T) {
    h := newHandler(t, nil, nil)
    rec, err := postProcess(t, h, `{"query": "how is apple stock doing"}`)
    if err != nil {
        t.Fatalf("handler error: %v", err)
    }
    if rec.Code != http.StatusInternalServerError {
        t.Fatalf("status = %d", rec.Code)
    }
    var resp models.FinalResponse
    if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
        t.Fatalf("fault response lost its shape: %v", err)
    }
    if resp.Narrative != usecase.InternalFaultNarrative {
        t.Fatalf("narrative = %q", resp.Narrative)
    }
    if resp.AudioBase64 == nil {
        t.Fatalf("fault response should still attempt audio")
    }
}

func TestErrorStatus(t *testing.T) {
    if got := errorStatus(xhttp.InternalErrorf("boom: %d", 1)); got != http.StatusInternalServerError {
        t.Fatalf("status = %d", got)
    }
    if got := errorStatus(xhttp.NewAppError("ERR_UPSTREAM", "", "bad gateway", http.StatusBadGateway)); got != http.StatusBadGateway {
        t.Fatalf("status = %d", got)
    }
    if got := errorStatus(fmt.Errorf("plain")); got != http.StatusInternalServerError {
        t.Fatalf("status = %d", got)
    }
}

func TestHealthEndpoint(t *testing.T) {
    e := echo.New()

    h := newHandler(t, testLogger(t), nil)
    rec := httptest.NewRecorder()
    if err := h.Health(e.NewContext(httptest.NewRequest(http.MethodGet, "/health", nil), rec)); err != nil {
        t.Fatalf("handler error: %v", err)
    }
    var body map[string]string
    if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
        t.Fatalf("decode: %v", err)
    }
    if body["status"] != "ok" {
        t.Fatalf("status = %q", body["status"])
    }

    h = newHandler(t, testLogger(t), fmt.Errorf("unreachable"))
    rec = httptest.NewRecorder()
    if err := h.Health(e.NewContext(httptest.NewRequest(http.MethodGet, "/health", nil), rec)); err != nil {
        t.Fatalf("handler error: %v", err)
    }
    if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
        t.Fatalf("decode: %v", err)
    }
    if !strings.Contains(body["status"], "degraded") {
        t.Fatalf("status = %q", body["status"])
    }
}
