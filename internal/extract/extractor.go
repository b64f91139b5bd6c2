package extract

import (
	"context"
	"log/slog"
	"math/rand"
	"strings"
	"time"

	"github.com/leasematch-platform/leasematch/internal/conversation"
	"github.com/leasematch-platform/leasematch/internal/metrics"
)

// Extractor is the boundary to the external language-model service. It owns
// the retry policy and the guarantee that extraction failures never surface
// as errors to the conversation: every failure path yields an empty partial.
type Extractor struct {
	client       Client
	retryBackoff time.Duration
}

// NewExtractor creates an extractor around the given client.
func NewExtractor(client Client) *Extractor {
	return &Extractor{
		client:       client,
		retryBackoff: 300 * time.Millisecond,
	}
}

// Bypass reports whether the utterance is a single-token confirmatory reply
// that the classifier handles on its own, making an external call wasteful.
func Bypass(utterance string) bool {
	switch strings.ToLower(strings.TrimSpace(utterance)) {
	case "1", "2", "owner", "brand", "yes", "no":
		return true
	}
	return false
}

// Extract sends the utterance and transcript to the language-model service
// and returns a typed partial requirements object with per-field confidence.
// The call gets one retry with jittered backoff; if the second attempt or
// the parse fails, an empty partial and the cause are returned so the caller
// can log and continue with what it already knows.
func (e *Extractor) Extract(ctx context.Context, utterance, transcript string, entityType conversation.EntityType) (*conversation.Extracted, map[string]float64, error) {
	system := systemPrompt(entityType)
	user := userPrompt(utterance, transcript)

	start := time.Now()
	raw, err := e.client.Complete(ctx, system, user)
	if err != nil {
		backoff := e.retryBackoff + time.Duration(rand.Int63n(int64(e.retryBackoff)))
		slog.Warn("extraction call failed, retrying once", "error", err, "backoff", backoff)

		select {
		case <-time.After(backoff):
		case <-ctx.Done():
			metrics.ExtractionsTotal.WithLabelValues("error").Inc()
			return emptyPartial(entityType), nil, ctx.Err()
		}

		raw, err = e.client.Complete(ctx, system, user)
		if err != nil {
			metrics.ExtractionsTotal.WithLabelValues("error").Inc()
			return emptyPartial(entityType), nil, err
		}
	}
	metrics.ExtractionDuration.Observe(time.Since(start).Seconds())

	extracted, confidence, err := ParseRequirements(raw, entityType)
	if err != nil {
		metrics.ExtractionsTotal.WithLabelValues("parse_error").Inc()
		return emptyPartial(entityType), nil, err
	}

	metrics.ExtractionsTotal.WithLabelValues("ok").Inc()
	return extracted, confidence, nil
}
