package enrich

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/time/rate"
	"google.golang.org/genai"

	"github.com/wanderwiseai/travel-etl/internal/types"
)

// EmbeddingService generates embedding vectors for processed text using the
// Gemini embedding API. Embedding is a hard dependency of a record: an API
// error here fails the record.
type EmbeddingService struct {
	client  *genai.Client
	model   string
	limiter *rate.Limiter
	logger  *slog.Logger
}

// NewEmbeddingService creates the Gemini-backed embedding enricher.
// requestsPerSecond bounds the call rate across all concurrently processed
// records; pass 0 to disable limiting.
func NewEmbeddingService(ctx context.Context, model string, requestsPerSecond float64, logger *slog.Logger) (*EmbeddingService, error) {
	apiKey := os.Getenv("GOOGLE_GEMINI_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("GOOGLE_GEMINI_API_KEY environment variable is not set")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	var limiter *rate.Limiter
	if requestsPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(requestsPerSecond), 1)
	}

	return &EmbeddingService{
		client:  client,
		model:   model,
		limiter: limiter,
		logger:  logger,
	}, nil
}

// Enrich embeds the record's processed text and stores the vector on the
// record. Records without processed text are left untouched.
func (s *EmbeddingService) Enrich(ctx context.Context, rec *types.ProcessedRecord) error {
	if rec.ProcessedText == "" {
		return nil
	}
	embedding, err := s.GenerateEmbedding(ctx, rec.ProcessedText)
	if err != nil {
		return err
	}
	rec.Embedding = embedding
	return nil
}

// GenerateEmbedding embeds a single text and returns the vector.
func (s *EmbeddingService) GenerateEmbedding(ctx context.Context, text string) ([]float32, error) {
	ctx, span := otel.Tracer("EmbeddingService").Start(ctx, "GenerateEmbedding", trace.WithAttributes(
		attribute.Int("text.length", len(text)),
		attribute.String("model", s.model),
	))
	defer span.End()

	if s.limiter != nil {
		if err := s.limiter.Wait(ctx); err != nil {
			span.RecordError(err)
			return nil, err
		}
	}

	resp, err := s.client.Models.EmbedContent(ctx, s.model, genai.Text(text), nil)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to generate embedding")
		return nil, fmt.Errorf("failed to generate embedding: %w", err)
	}
	if len(resp.Embeddings) == 0 || len(resp.Embeddings[0].Values) == 0 {
		err := fmt.Errorf("embedding response contained no values")
		span.RecordError(err)
		span.SetStatus(codes.Error, "Empty embedding response")
		return nil, err
	}

	span.SetAttributes(attribute.Int("embedding.dimensions", len(resp.Embeddings[0].Values)))
	span.SetStatus(codes.Ok, "Embedding generated")
	return resp.Embeddings[0].Values, nil
}
