package summarize

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// State names one step of the drafting loop.
type State string

const (
	StateDrafting   State = "DRAFTING"
	StateValidating State = "VALIDATING"
	StateAccepted   State = "ACCEPTED"
	StateRetrying   State = "RETRYING"
	StateExhausted  State = "EXHAUSTED"
)

const (
	defaultMaxAttempts = 3
	defaultTurnTimeout = 120 * time.Second
)

// Outcome is the terminal result of one orchestrator run.
type Outcome struct {
	Accepted   bool
	Reason     string
	Result     *SummaryResult
	Attempts   int
	Validation *ValidationOutcome
}

// Orchestrator runs the bounded generate, validate, retry conversation.
// It holds no per-request state; one instance serves concurrent runs.
type Orchestrator struct {
	generator   Generator
	maxAttempts int
	turnTimeout time.Duration
	logger      *zap.Logger
}

// OrchestratorOption configures an Orchestrator.
type OrchestratorOption func(*Orchestrator)

// WithMaxAttempts overrides the drafting attempt budget.
func WithMaxAttempts(n int) OrchestratorOption {
	return func(o *Orchestrator) {
		if n > 0 {
			o.maxAttempts = n
		}
	}
}

// WithTurnTimeout bounds each generator call.
func WithTurnTimeout(d time.Duration) OrchestratorOption {
	return func(o *Orchestrator) {
		if d > 0 {
			o.turnTimeout = d
		}
	}
}

// WithLogger attaches a logger for attempt-level diagnostics.
func WithLogger(l *zap.Logger) OrchestratorOption {
	return func(o *Orchestrator) {
		if l != nil {
			o.logger = l
		}
	}
}

func NewOrchestrator(gen Generator, opts ...OrchestratorOption) *Orchestrator {
	o := &Orchestrator{
		generator:   gen,
		maxAttempts: defaultMaxAttempts,
		turnTimeout: defaultTurnTimeout,
		logger:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Run builds the prompt for req and drives the conversation until a draft is
// accepted or the attempt budget runs out. An exhausted run still carries the
// last parseable candidate so callers can keep a best-effort result.
func (o *Orchestrator) Run(ctx context.Context, req SummaryRequest) (Outcome, error) {
	prompt, err := BuildPrompt(req)
	if err != nil {
		return Outcome{}, err
	}

	conversation := []Message{
		{Role: RoleSystem, Content: SystemPrompt(req.TargetLanguage)},
		{Role: RoleUser, Content: prompt},
	}

	var (
		lastCandidate  *Candidate
		lastValidation *ValidationOutcome
		lastReason     string
	)

	for attempt := 1; attempt <= o.maxAttempts; attempt++ {
		reply, err := o.draft(ctx, conversation)
		if err != nil {
			if ctx.Err() != nil {
				return Outcome{Attempts: attempt}, ctx.Err()
			}
			lastReason = fmt.Sprintf("generator call failed: %v", err)
			o.logger.Warn("summary draft call failed",
				zap.Int("attempt", attempt),
				zap.Error(err))
			continue
		}
		conversation = append(conversation, Message{Role: RoleGenerator, Content: reply})

		candidate, err := Extract(reply)
		if err != nil {
			lastReason = err.Error()
			o.logger.Warn("summary draft had no parseable payload",
				zap.Int("attempt", attempt),
				zap.Error(err))
			if attempt < o.maxAttempts {
				conversation = append(conversation, Message{
					Role:    RoleValidator,
					Content: "Your reply contained no parseable JSON object. Return only the JSON object described in the system message.",
				})
			}
			continue
		}
		lastCandidate = candidate

		outcome := Validate(candidate, req.TargetLanguage)
		lastValidation = &outcome
		if outcome.IsValid {
			result := candidate.Result
			return Outcome{
				Accepted:   true,
				Result:     &result,
				Attempts:   attempt,
				Validation: &outcome,
			}, nil
		}

		lastReason = outcome.Message
		o.logger.Info("summary draft rejected",
			zap.Int("attempt", attempt),
			zap.Strings("language_issues", outcome.LanguageIssues),
			zap.Strings("structure_issues", outcome.StructureIssues),
			zap.Strings("content_issues", outcome.ContentIssues))

		if attempt < o.maxAttempts {
			conversation = append(conversation, Message{
				Role:    RoleValidator,
				Content: BuildRetryPrompt(outcome, req.TargetLanguage),
			})
		}
	}

	out := Outcome{
		Reason:     fmt.Sprintf("no accepted draft after %d attempts: %s", o.maxAttempts, lastReason),
		Attempts:   o.maxAttempts,
		Validation: lastValidation,
	}
	if lastCandidate != nil {
		result := lastCandidate.Result
		out.Result = &result
	}
	return out, nil
}

func (o *Orchestrator) draft(ctx context.Context, conversation []Message) (string, error) {
	turnCtx, cancel := context.WithTimeout(ctx, o.turnTimeout)
	defer cancel()
	return o.generator.Generate(turnCtx, conversation)
}
