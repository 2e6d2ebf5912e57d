package agents

import (
	"context"
	"fmt"

	"FinVoice/internal/domain/repository"
	domservice "FinVoice/internal/domain/service"
	"FinVoice/pkg/config"
	xhttp "FinVoice/pkg/http"
	"FinVoice/pkg/retry"
)

// SpeechClient talks to the speech synthesis agent. Audio is best effort:
// a single attempt, and callers degrade to a narrative-only response on
// any failure.
type SpeechClient struct {
	agentClient
}

func NewSpeechClient(cfg *config.Config, client *xhttp.Client, metrics repository.Metrics) domservice.SpeechService {
	policy := retry.NewPolicy(1, 0)
	return &SpeechClient{
		agentClient: newAgentClient("speech", cfg.Agents.SpeechURL, cfg.Agents.SpeechTimeout, client, policy, metrics),
	}
}

func (c *SpeechClient) Speak(ctx context.Context, text string) (string, error) {
	payload := map[string]string{"text": text}
	var raw struct {
		AudioBase64 *string `json:"audio_base64"`
	}
	if err := c.postJSON(ctx, "/speak", payload, &raw); err != nil {
		return "", err
	}
	if raw.AudioBase64 == nil || *raw.AudioBase64 == "" {
		return "", fmt.Errorf("speech agent: audio_base64 key missing")
	}
	return *raw.AudioBase64, nil
}
