package usecase

import (
	"encoding/json"
	"fmt"
	"strings"

	"FinVoice/internal/domain/models"
	"FinVoice/pkg/util"
)

const snippetLimit = 300

// AssemblePrompt renders the reconciled bundle into the single text block
// handed to the generation agent. Section order is fixed: query, market
// data, news, context (only when confident), analysis. Map payloads go
// through encoding/json, which sorts keys, so output is deterministic.
func AssemblePrompt(b models.ReconciledBundle) string {
	var sb strings.Builder

	sb.WriteString("You are a professional financial assistant. Based on the user's question and the data below, generate a concise, insightful stock analysis.\n\n")

	sb.WriteString("User Query: ")
	sb.WriteString(b.Query)
	sb.WriteString("\n\n")

	sb.WriteString("Market Data:\n")
	sb.WriteString(marshalSection(b.Market))
	sb.WriteString("\n\n")

	sb.WriteString("News Articles:\n")
	sb.WriteString(marshalSection(b.News.Articles))
	sb.WriteString("\n\n")

	if b.Confident && len(b.Chunks) > 0 {
		sb.WriteString("Context from Docs:\n")
		for _, ch := range b.Chunks {
			sb.WriteString("- ")
			sb.WriteString(util.Truncate(ch.Snippet, snippetLimit))
			if ch.URL != "" {
				fmt.Fprintf(&sb, " (%s)", ch.URL)
			}
			sb.WriteString("\n")
		}
		sb.WriteString("\n")
	}

	sb.WriteString("Analysis:\n")
	sb.WriteString(marshalSection(b.Analysis))
	sb.WriteString("\n\n")

	sb.WriteString("Respond in a clear, friendly, and informative tone as if you are talking to a curious investor.\n")

	return sb.String()
}

func marshalSection(v interface{}) string {
	b, err := json.Marshal(v)
	if err != nil {
		return "{}"
	}
	// A nil map arrives as a non-nil interface and marshals to "null";
	// the sections should always read as objects.
	if s := string(b); s != "null" {
		return s
	}
	return "{}"
}
