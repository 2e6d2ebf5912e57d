package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"FinVoice/internal/domain/models"
	"FinVoice/internal/domain/repository"
	domservice "FinVoice/internal/domain/service"
	"FinVoice/internal/service/extractor"
	"FinVoice/internal/service/normalizer"
	xlogger "FinVoice/pkg/logger"
)

// Stage names the per-request state machine positions, in order. Observers
// receive each transition as it happens.
type Stage string

const (
	StageReceived         Stage = "received"
	StageNormalized       Stage = "normalized"
	StageTickersExtracted Stage = "tickers_extracted"
	StageDispatching      Stage = "dispatching"
	StageReconciled       Stage = "reconciled"
	StagePromptAssembled  Stage = "prompt_assembled"
	StageGenerated        Stage = "generated"
	StageFinished         Stage = "finished"
)

// Observer is notified of stage transitions. Used by the websocket session
// endpoint; nil is fine.
type Observer func(stage Stage, detail string)

// Pipeline is the orchestration core: normalize, extract, fan out, reconcile,
// assemble, generate, narrate. It always produces a FinalResponse; upstream
// failures degrade the narrative, they never surface as errors.
type Pipeline struct {
	extractor  *extractor.Extractor
	dispatcher *Dispatcher
	analysis   domservice.AnalysisService
	generation domservice.GenerationService
	speech     domservice.SpeechService
	audit      repository.AuditPublisher
	metrics    repository.Metrics
	logger     *xlogger.Logger
}

func NewPipeline(
	ext *extractor.Extractor,
	dispatcher *Dispatcher,
	analysis domservice.AnalysisService,
	generation domservice.GenerationService,
	speech domservice.SpeechService,
	audit repository.AuditPublisher,
	metrics repository.Metrics,
	logger *xlogger.Logger,
) *Pipeline {
	return &Pipeline{
		extractor:  ext,
		dispatcher: dispatcher,
		analysis:   analysis,
		generation: generation,
		speech:     speech,
		audit:      audit,
		metrics:    metrics,
		logger:     logger,
	}
}

// Process runs one query through the whole pipeline.
func (p *Pipeline) Process(ctx context.Context, rawQuery string, obs Observer) models.FinalResponse {
	start := time.Now()
	requestID := uuid.NewString()

	if rawQuery == "" {
		rawQuery = models.DefaultQuery
	}
	emit(obs, StageReceived, rawQuery)

	normalized := normalizer.Normalize(rawQuery)
	emit(obs, StageNormalized, normalized)

	tickers := p.extractor.Tickers(ctx, normalized)
	userURLs := p.extractor.URLs(rawQuery)
	if p.metrics != nil {
		p.metrics.RecordTickersExtracted(len(tickers))
	}
	p.logger.Info("tickers extracted",
		xlogger.String("request_id", requestID),
		xlogger.Strings("tickers", tickers),
		xlogger.Strings("user_urls", userURLs),
	)
	emit(obs, StageTickersExtracted, joinOrDash(tickers))

	// No instrument in the query: a defined outcome with its own message,
	// no upstream calls at all.
	if len(tickers) == 0 {
		return p.finish(ctx, obs, finishParams{
			requestID: requestID,
			query:     rawQuery,
			narrative: NoTickerNarrative,
			outcome:   "apology",
			start:     start,
		})
	}

	emit(obs, StageDispatching, "")
	batch := p.dispatcher.Dispatch(ctx, normalized, tickers, userURLs)

	valid, missing := Reconcile(tickers, batch.Market)
	emit(obs, StageReconciled, joinOrDash(valid))

	// Zero usable tickers short-circuits: downstream analysis is pointless
	// with no market data.
	if len(valid) == 0 {
		return p.finish(ctx, obs, finishParams{
			requestID: requestID,
			query:     rawQuery,
			tickers:   tickers,
			missing:   missing,
			narrative: ApologyNarrative(missing),
			outcome:   "apology",
			start:     start,
		})
	}

	analysis, err := p.analysis.Analyze(ctx, batch.Market, batch.News, valid, normalized)
	if err != nil {
		// Analysis is additive: the narrative can still be generated from
		// market and news data alone.
		p.logger.Warn("analysis unavailable",
			xlogger.String("request_id", requestID),
			xlogger.Error(err),
		)
		analysis = nil
	}

	bundle := models.ReconciledBundle{
		Query:          rawQuery,
		ValidTickers:   valid,
		MissingTickers: missing,
		Market:         batch.Market,
		News:           batch.News,
		Chunks:         batch.Retrieval.Chunks,
		Analysis:       analysis,
		Confident:      Confident(batch.Retrieval, batch.RetrievalErr),
	}

	prompt := AssemblePrompt(bundle)
	emit(obs, StagePromptAssembled, "")

	outcome := "ok"
	narrative, err := p.generation.Generate(ctx, prompt, analysis)
	if err != nil {
		p.logger.Error("generation failed",
			xlogger.String("request_id", requestID),
			xlogger.Error(err),
		)
		narrative = InternalFaultNarrative
		outcome = "error"
	}
	emit(obs, StageGenerated, "")

	return p.finish(ctx, obs, finishParams{
		requestID: requestID,
		query:     rawQuery,
		tickers:   tickers,
		valid:     valid,
		missing:   missing,
		narrative: narrative,
		outcome:   outcome,
		start:     start,
	})
}

type finishParams struct {
	requestID string
	query     string
	tickers   []string
	valid     []string
	missing   []string
	narrative string
	outcome   string
	start     time.Time
}

// finish attaches best-effort audio and records metrics and audit. Every
// terminal branch of the state machine, apologies included, passes through
// here.
func (p *Pipeline) finish(ctx context.Context, obs Observer, fp finishParams) models.FinalResponse {
	resp := models.FinalResponse{Narrative: fp.narrative}

	if audio, err := p.speech.Speak(ctx, fp.narrative); err != nil {
		p.logger.Warn("speech synthesis unavailable",
			xlogger.String("request_id", fp.requestID),
			xlogger.Error(err),
		)
	} else {
		resp.AudioBase64 = &audio
	}
	emit(obs, StageFinished, fp.outcome)

	elapsed := time.Since(fp.start)
	if p.metrics != nil {
		p.metrics.RecordRequest(fp.outcome, elapsed.Seconds())
	}
	p.logger.Info("request finished",
		xlogger.String("request_id", fp.requestID),
		xlogger.String("outcome", fp.outcome),
		xlogger.Duration("duration_ms", elapsed),
	)

	if p.audit != nil {
		audit := models.RequestAudit{
			RequestID:      fp.requestID,
			Query:          fp.query,
			Tickers:        fp.tickers,
			ValidTickers:   fp.valid,
			MissingTickers: fp.missing,
			Outcome:        fp.outcome,
			DurationMS:     elapsed.Milliseconds(),
			Timestamp:      time.Now().UTC(),
		}
		if err := p.audit.Publish(ctx, audit); err != nil {
			p.logger.Warn("audit publish failed", xlogger.Error(err))
		}
	}

	return resp
}

// Fallback builds the catch-all response for unexpected internal faults,
// still attempting speech so the caller gets the usual shape.
func (p *Pipeline) Fallback(ctx context.Context) models.FinalResponse {
	resp := models.FinalResponse{Narrative: InternalFaultNarrative}
	if audio, err := p.speech.Speak(ctx, resp.Narrative); err == nil {
		resp.AudioBase64 = &audio
	}
	return resp
}

func emit(obs Observer, stage Stage, detail string) {
	if obs != nil {
		obs(stage, detail)
	}
}

func joinOrDash(xs []string) string {
	if len(xs) == 0 {
		return "-"
	}
	out := xs[0]
	for _, x := range xs[1:] {
		out += ", " + x
	}
	return out
}
