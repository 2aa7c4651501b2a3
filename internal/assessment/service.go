package assessment

import (
	"context"
	"errors"
	"log/slog"

	"github.com/abhisek/skillgauge/internal/llm"
)

// Config holds the sampling parameters for each oracle operation.
type Config struct {
	GenerateTemperature float64
	EvaluateTemperature float64
	DemoteTemperature   float64
	MaxTokens           int
}

// DefaultConfig returns the standard sampling parameters: cooler
// temperatures for evaluation and demotion than for generation.
func DefaultConfig() Config {
	return Config{
		GenerateTemperature: 0.3,
		EvaluateTemperature: 0.2,
		DemoteTemperature:   0.2,
		MaxTokens:           4000,
	}
}

// Service runs the assessment lifecycle: generation, evaluation, and the
// demotion policy. It holds no state across requests; concurrent calls
// are independent.
type Service struct {
	provider llm.Provider
	cfg      Config
	log      *slog.Logger
}

// NewService creates a Service around an already-initialized oracle
// provider.
func NewService(provider llm.Provider, cfg Config, log *slog.Logger) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{provider: provider, cfg: cfg, log: log}
}

// Evaluation is the outcome of evaluating one submission. NextAssessment
// is non-nil only when the demotion policy fired.
type Evaluation struct {
	Report         *FeedbackReport `json:"report"`
	NextAssessment *Set            `json:"next_assessment,omitempty"`
}

// Generate produces a standard assessment (15 MCQ, 5 SAQ, 1 case) for
// the given spec.
func (s *Service) Generate(ctx context.Context, spec Spec) (*Set, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	return s.generate(ctx, spec, StandardPlan, "generate", s.cfg.GenerateTemperature)
}

// GenerateDemotion produces a simplified assessment (10 MCQ, 3 SAQ, 1
// case), forcing the difficulty to Beginner regardless of the spec.
func (s *Service) GenerateDemotion(ctx context.Context, spec Spec) (*Set, error) {
	spec.Difficulty = Beginner
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	return s.generate(ctx, spec, DemotionPlan, "demote", s.cfg.DemoteTemperature)
}

// Evaluate scores one submission and applies the demotion policy. When
// the policy fires, a fresh assessment at the next lower tier is
// generated and returned alongside the report.
func (s *Service) Evaluate(ctx context.Context, batch SubmissionBatch) (*Evaluation, error) {
	if err := batch.Validate(); err != nil {
		return nil, err
	}

	att := newAttempt()
	if err := att.submit(); err != nil {
		return nil, err
	}

	const op = "evaluate"
	plan := PlanFor(len(batch.Responses))

	raw, err := s.callOracle(ctx, op, llm.Request{
		System:      evaluateSystemPrompt,
		Prompt:      buildEvaluationPrompt(batch, plan),
		MaxTokens:   s.cfg.MaxTokens,
		Temperature: s.cfg.EvaluateTemperature,
	})
	if err != nil {
		return nil, err
	}

	payload, err := decodeEvaluation(op, raw)
	if err != nil {
		return nil, err
	}
	if err := att.evaluated(); err != nil {
		return nil, err
	}

	report, target, demote := buildReport(payload, batch, plan, s.log)
	if err := att.finish(demote); err != nil {
		return nil, err
	}

	out := &Evaluation{Report: report}
	if att.state == StateDemoted {
		next, err := s.generate(ctx, Spec{
			Role:       batch.Role,
			Skills:     batch.Skills,
			Difficulty: target,
		}, DemotionPlan, "demote", s.cfg.DemoteTemperature)
		if err != nil {
			return nil, err
		}
		out.NextAssessment = next
		s.log.Info("demotion policy fired",
			"from", batch.Difficulty, "to", target,
			"score", report.Score, "total_possible", report.TotalPossible)
	}

	return out, nil
}

// generate runs one prompt → oracle → contract → assemble pipeline.
func (s *Service) generate(ctx context.Context, spec Spec, plan Plan, purpose string, temperature float64) (*Set, error) {
	raw, err := s.callOracle(ctx, purpose, llm.Request{
		System:      generateSystemPrompt,
		Prompt:      buildGenerationPrompt(spec, plan),
		MaxTokens:   s.cfg.MaxTokens,
		Temperature: temperature,
	})
	if err != nil {
		return nil, err
	}

	payload, err := decodeGeneration(purpose, raw)
	if err != nil {
		return nil, err
	}

	return assemble(purpose, payload, spec, plan)
}

// callOracle performs one round trip and maps every gateway failure,
// timeout included, to an OracleCommunicationError.
func (s *Service) callOracle(ctx context.Context, op string, req llm.Request) (string, error) {
	resp, err := s.provider.Generate(llm.WithPurpose(ctx, op), req)
	if err != nil {
		return "", &OracleCommunicationError{Op: op, Err: err}
	}
	return resp.Text, nil
}

// IsClientError reports whether err is the caller's fault rather than a
// service failure. Transport adapters use it to pick a status code.
func IsClientError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
