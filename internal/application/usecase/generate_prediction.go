package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/harvestguard/croprisk/internal/application/dto"
	"github.com/harvestguard/croprisk/internal/domain/model"
	"github.com/harvestguard/croprisk/internal/domain/service"
	"github.com/harvestguard/croprisk/internal/domain/valueobject"
)

const instrumentationName = "github.com/harvestguard/croprisk/internal/application/usecase"

// GeneratePrediction runs the encode, classify and estimate pipeline for one
// season.
type GeneratePrediction struct {
	encoder   *service.FeatureEncoder
	predictor *service.Predictor
	estimator *service.PayoutEstimator
	logger    *slog.Logger
	tracer    trace.Tracer

	predictions metric.Int64Counter
	failures    metric.Int64Counter
	duration    metric.Float64Histogram
}

// NewGeneratePrediction creates a new GeneratePrediction use case.
func NewGeneratePrediction(
	encoder *service.FeatureEncoder,
	predictor *service.Predictor,
	estimator *service.PayoutEstimator,
	meter metric.Meter,
	logger *slog.Logger,
) (*GeneratePrediction, error) {
	predictions, err := meter.Int64Counter("predictions",
		metric.WithDescription("Predictions generated, by risk level."))
	if err != nil {
		return nil, fmt.Errorf("failed to create predictions counter: %w", err)
	}
	failures, err := meter.Int64Counter("prediction.failures",
		metric.WithDescription("Predictions that failed, by reason."))
	if err != nil {
		return nil, fmt.Errorf("failed to create failures counter: %w", err)
	}
	duration, err := meter.Float64Histogram("prediction.duration",
		metric.WithDescription("Time to encode, classify and estimate one season."),
		metric.WithUnit("ms"))
	if err != nil {
		return nil, fmt.Errorf("failed to create duration histogram: %w", err)
	}

	return &GeneratePrediction{
		encoder:     encoder,
		predictor:   predictor,
		estimator:   estimator,
		logger:      logger,
		tracer:      otel.Tracer(instrumentationName),
		predictions: predictions,
		failures:    failures,
		duration:    duration,
	}, nil
}

// Execute validates the request, encodes it, classifies it and maps the risk
// level to a payout. Any failure fails the whole prediction.
func (uc *GeneratePrediction) Execute(ctx context.Context, req dto.PredictionRequest) (dto.PredictionResponse, error) {
	start := time.Now()
	id := uuid.New()

	ctx, span := uc.tracer.Start(ctx, "GeneratePrediction",
		trace.WithAttributes(
			attribute.String("prediction.id", id.String()),
			attribute.String("season.country", req.Country),
			attribute.String("season.crop", req.Crop),
		))
	defer span.End()

	resp, err := uc.execute(ctx, id, req)
	uc.duration.Record(ctx, float64(time.Since(start).Microseconds())/1000)

	if err != nil {
		reason := failureReason(err)
		uc.failures.Add(ctx, 1, metric.WithAttributes(attribute.String("reason", reason)))
		span.RecordError(err)
		span.SetStatus(codes.Error, reason)

		level := slog.LevelError
		if reason == "invalid_input" {
			level = slog.LevelWarn
		}
		uc.logger.Log(ctx, level, "prediction failed",
			"prediction_id", id.String(),
			"reason", reason,
			"error", err,
		)
		return dto.PredictionResponse{}, err
	}

	uc.predictions.Add(ctx, 1, metric.WithAttributes(attribute.String("risk_level", resp.RiskLevel)))
	span.SetAttributes(attribute.String("prediction.risk_level", resp.RiskLevel))

	uc.logger.Info("prediction generated",
		"prediction_id", id.String(),
		"country", req.Country,
		"crop", req.Crop,
		"risk_level", resp.RiskLevel,
		"payout_estimate", resp.PayoutEstimate,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	return resp, nil
}

func (uc *GeneratePrediction) execute(ctx context.Context, id uuid.UUID, req dto.PredictionRequest) (dto.PredictionResponse, error) {
	// 1. Validate the raw parameters.
	input, err := model.NewSeasonInput(req.Params())
	if err != nil {
		return dto.PredictionResponse{}, err
	}

	// 2. Encode into the training schema.
	vector, err := uc.encoder.Encode(input)
	if err != nil {
		return dto.PredictionResponse{}, fmt.Errorf("failed to encode season: %w", err)
	}
	if unrepresented := vector.UnrepresentedCategories(); len(unrepresented) > 0 {
		uc.logger.Warn("season uses baseline categories without indicator columns",
			"prediction_id", id.String(),
			"categories", unrepresented,
		)
	}

	// 3. Classify.
	classification, err := uc.predictor.Predict(ctx, vector)
	if err != nil {
		return dto.PredictionResponse{}, fmt.Errorf("failed to predict risk: %w", err)
	}

	// 4. Map risk to payout.
	estimate, err := uc.estimator.Estimate(classification.Level)
	if err != nil {
		return dto.PredictionResponse{}, fmt.Errorf("failed to estimate payout: %w", err)
	}

	return dto.NewPredictionResponse(id, vector, classification, estimate), nil
}

func failureReason(err error) string {
	switch {
	case errors.Is(err, model.ErrInvalidInput):
		return "invalid_input"
	case errors.Is(err, model.ErrSchemaMismatch):
		return "schema_mismatch"
	case errors.Is(err, valueobject.ErrUnknownRiskLabel):
		return "unknown_risk_label"
	case errors.Is(err, service.ErrNoPayoutForRisk):
		return "no_payout"
	default:
		return "internal"
	}
}
