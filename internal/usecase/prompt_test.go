package usecase

import (
    "strings"
    "testing"

    "FinVoice/internal/domain/models"
)

func sampleBundle() models.ReconciledBundle {
    return models.ReconciledBundle{
        Query:        "how is apple doing",
        ValidTickers: []string{"AAPL"},
        Market: models.MarketData{
            "AAPL": {Candles: candles(2)},
        },
        News: models.NewsData{Articles: map[string][]models.Article{
            "AAPL": {{URL: "https://news.example.com/aapl", Snippet: "iPhone demand strong"}},
        }},
        Chunks: []models.Chunk{
            {Snippet: "quarterly filing highlights services growth", URL: "https://docs.example.com/10q"},
        },
        Analysis:  models.AnalysisData{"AAPL": map[string]any{"trend": "up"}},
        Confident: true,
    }
}

func TestAssemblePromptSectionOrder(t *testing.T) {
    prompt := AssemblePrompt(sampleBundle())

    sections := []string{
        "User Query:",
        "Market Data:",
        "News Articles:",
        "Context from Docs:",
        "Analysis:",
    }
    last := -1
    for _, s := range sections {
        idx := strings.Index(prompt, s)
        if idx < 0 {
            t.Fatalf("section %q missing", s)
        }
        if idx < last {
            t.Fatalf("section %q out of order", s)
        }
        last = idx
    }
    if !strings.Contains(prompt, "how is apple doing") {
        t.Fatalf("query text missing")
    }
    if !strings.Contains(prompt, "https://docs.example.com/10q") {
        t.Fatalf("chunk source URL missing")
    }
}

func TestAssemblePromptDropsContextWhenNotConfident(t *testing.T) {
    b := sampleBundle()
    b.Confident = false
    prompt := AssemblePrompt(b)
    if strings.Contains(prompt, "Context from Docs:") {
        t.Fatalf("context section included despite low confidence")
    }
    if !strings.Contains(prompt, "Market Data:") || !strings.Contains(prompt, "Analysis:") {
        t.Fatalf("other sections must survive")
    }
}

func TestAssemblePromptTruncatesSnippets(t *testing.T) {
    b := sampleBundle()
    b.Chunks = []models.Chunk{{Snippet: strings.Repeat("x", 1000)}}
    prompt := AssemblePrompt(b)
    if strings.Contains(prompt, strings.Repeat("x", 400)) {
        t.Fatalf("snippet not truncated")
    }
    if !strings.Contains(prompt, strings.Repeat("x", 300)+"...") {
        t.Fatalf("truncation marker missing")
    }
}

func TestAssemblePromptEmptySectionsRenderObjects(t *testing.T) {
    b := models.ReconciledBundle{Query: "quiet day"}
    prompt := AssemblePrompt(b)
    if strings.Contains(prompt, "null") {
        t.Fatalf("nil section rendered as null:\n%s", prompt)
    }
    for _, want := range []string{"Market Data:\n{}", "News Articles:\n{}", "Analysis:\n{}"} {
        if !strings.Contains(prompt, want) {
            t.Fatalf("missing %q in:\n%s", want, prompt)
        }
    }
}

func TestAssemblePromptDeterministic(t *testing.T) {
    b := sampleBundle()
    b.Market["MSFT"] = models.TickerSeries{Candles: candles(1)}
    first := AssemblePrompt(b)
    for i := 0; i < 10; i++ {
        if AssemblePrompt(b) != first {
            t.Fatalf("prompt not deterministic")
        }
    }
}
