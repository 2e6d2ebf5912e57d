package models

// Article is one scraped news item for a ticker.
type Article struct {
	URL     string `json:"url"`
	Snippet string `json:"snippet"`
}

// NewsData is the news agent result: articles keyed by ticker.
type NewsData struct {
	Articles map[string][]Article `json:"articles"`
}

// Chunk is one retrieved document fragment from the retrieval agent.
type Chunk struct {
	URL     string `json:"url"`
	Snippet string `json:"snippet"`
}

// RetrievalResult holds the retrieval agent response.
type RetrievalResult struct {
	Chunks []Chunk `json:"chunks"`
}

// AnalysisData is the loosely shaped numeric analysis payload. It is passed
// through to the generation agent unchanged, so it stays a map.
type AnalysisData map[string]any
