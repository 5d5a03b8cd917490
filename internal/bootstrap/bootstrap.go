package bootstrap

import (
	"context"
	"fmt"
	"time"

	"github.com/kirillkom/exam-verifier/internal/config"
	"github.com/kirillkom/exam-verifier/internal/core/domain"
	"github.com/kirillkom/exam-verifier/internal/core/ports"
	"github.com/kirillkom/exam-verifier/internal/core/usecase"
	"github.com/kirillkom/exam-verifier/internal/infrastructure/llm/mock"
	"github.com/kirillkom/exam-verifier/internal/infrastructure/llm/openai"
	"github.com/kirillkom/exam-verifier/internal/infrastructure/resilience"
	"github.com/kirillkom/exam-verifier/internal/observability/metrics"
)

const (
	BackendOpenAI = "openai"
	BackendMock   = "mock"
)

type App struct {
	Config  config.Config
	Variant domain.SchemaVariant

	VerifyUC ports.ExamVerifier
	Metrics  *metrics.PipelineMetrics
}

// New wires configuration into a ready pipeline. Configuration mistakes are
// fatal here, at startup, never per request.
func New(cfg config.Config) (*App, error) {
	variant, err := domain.ParseSchemaVariant(cfg.OutputSchema)
	if err != nil {
		return nil, fmt.Errorf("parse output schema: %w", err)
	}

	classifier, err := newClassifier(cfg, variant)
	if err != nil {
		return nil, err
	}

	pipelineMetrics := metrics.NewPipelineMetrics("exam-verifier")
	metered := &meteredClassifier{
		inner:   classifier,
		metrics: pipelineMetrics,
		backend: cfg.BackendMode,
	}

	return &App{
		Config:   cfg,
		Variant:  variant,
		VerifyUC: usecase.NewVerifyExamUseCase(metered, variant),
		Metrics:  pipelineMetrics,
	}, nil
}

// meteredClassifier counts outbound backend calls without the pipeline or
// the backend clients knowing about metrics.
type meteredClassifier struct {
	inner   ports.ExamClassifier
	metrics *metrics.PipelineMetrics
	backend string
}

func (c *meteredClassifier) Classify(ctx context.Context, prompt domain.ModelPrompt) (string, error) {
	c.metrics.ObserveBackendCall("exam-verifier", c.backend)
	return c.inner.Classify(ctx, prompt)
}

func newClassifier(cfg config.Config, variant domain.SchemaVariant) (ports.ExamClassifier, error) {
	switch cfg.BackendMode {
	case BackendOpenAI:
		if cfg.OpenAIAPIKey == "" {
			return nil, fmt.Errorf("backend mode %q requires OPENAI_API_KEY", cfg.BackendMode)
		}
		breakerCfg := resilience.DefaultConfig()
		breakerCfg.Enabled = cfg.BreakerEnabled
		breaker := resilience.NewBreaker("openai-classify", breakerCfg, openai.RecordFailure)
		return openai.New(openai.Config{
			BaseURL:         cfg.OpenAIBaseURL,
			APIKey:          cfg.OpenAIAPIKey,
			Model:           cfg.OpenAIModel,
			MaxOutputTokens: cfg.MaxOutputTokens,
			Timeout:         time.Duration(cfg.BackendTimeout) * time.Second,
			RequestsPerSec:  cfg.BackendRPS,
			Burst:           cfg.BackendBurst,
		}, breaker), nil
	case BackendMock:
		return mock.New(time.Duration(cfg.MockDelayMillis)*time.Millisecond, variant), nil
	default:
		return nil, fmt.Errorf("unknown backend mode %q", cfg.BackendMode)
	}
}
