package summarize

import (
	"context"

	"go.uber.org/zap"
)

// Input is the raw material for one summarization run.
type Input struct {
	Title          string
	Description    string
	Tags           []string
	RawCaptions    string
	TargetLanguage string
}

// Pipeline composes parsing, prompting, drafting, and validation into a
// single entry point.
type Pipeline struct {
	orchestrator *Orchestrator
	logger       *zap.Logger
}

func NewPipeline(gen Generator, logger *zap.Logger, opts ...OrchestratorOption) *Pipeline {
	if logger == nil {
		logger = zap.NewNop()
	}
	opts = append(opts, WithLogger(logger))
	return &Pipeline{
		orchestrator: NewOrchestrator(gen, opts...),
		logger:       logger,
	}
}

// Summarize turns raw captions into a structured summary. The bool reports
// whether the result passed validation: an exhausted run still returns its
// last candidate as a best-effort result, flagged false. Only the total
// absence of a parseable candidate is an error.
func (p *Pipeline) Summarize(ctx context.Context, in Input) (*SummaryResult, bool, error) {
	units, err := ParseVTT(in.RawCaptions)
	if err != nil {
		return nil, false, err
	}

	outcome, err := p.orchestrator.Run(ctx, SummaryRequest{
		Title:          in.Title,
		Description:    in.Description,
		Tags:           in.Tags,
		Captions:       units,
		TargetLanguage: in.TargetLanguage,
	})
	if err != nil {
		return nil, false, err
	}

	if outcome.Accepted {
		return outcome.Result, true, nil
	}

	if outcome.Result != nil {
		p.logger.Warn("returning unvalidated summary",
			zap.Int("attempts", outcome.Attempts),
			zap.String("reason", outcome.Reason))
		return outcome.Result, false, nil
	}

	return nil, false, &GenerationError{Attempts: outcome.Attempts, Reason: outcome.Reason}
}
