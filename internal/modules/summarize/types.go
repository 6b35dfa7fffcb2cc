package summarize

import "context"

// CaptionUnit is one cleaned caption block.
type CaptionUnit struct {
	StartTime string `json:"stime"`
	Text      string `json:"txt"`
}

// SummaryRequest carries everything the prompt builder needs for one run.
type SummaryRequest struct {
	Title          string
	Description    string
	Tags           []string
	Captions       []CaptionUnit
	TargetLanguage string
}

// OutlineItem is one timestamped topic entry of the outline.
type OutlineItem struct {
	Timestamp string `json:"timestamp"`
	Topic     string `json:"topic"`
}

// SummaryResult is the structured pipeline output.
type SummaryResult struct {
	Outline  []OutlineItem `json:"outline"`
	Summary  string        `json:"summary"`
	Keywords []string      `json:"keywords"`
	Language string        `json:"language"`
}

// Candidate is an extracted draft plus the raw top-level keys the model
// actually emitted, so structure validation can detect extras the typed
// unmarshal would silently drop.
type Candidate struct {
	Result SummaryResult
	Keys   []string
}

// FieldError is one detailed validation error entry.
type FieldError struct {
	Field   string `json:"field"`
	Issue   string `json:"issue"`
	Details string `json:"details"`
}

// ValidationOutcome is the full report of one validation pass.
type ValidationOutcome struct {
	IsValid         bool         `json:"is_valid"`
	Message         string       `json:"message"`
	Errors          []FieldError `json:"errors,omitempty"`
	LanguageIssues  []string     `json:"language_issues,omitempty"`
	StructureIssues []string     `json:"structure_issues,omitempty"`
	ContentIssues   []string     `json:"content_issues,omitempty"`
}

// Role tags a conversation turn.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleGenerator Role = "generator"
	RoleValidator Role = "validator"
)

// Message is one turn of the drafting conversation.
type Message struct {
	Role    Role
	Content string
}

// Generator produces a free-form text reply for a conversation. Backends
// are interchangeable; the orchestrator only needs text out.
type Generator interface {
	Generate(ctx context.Context, messages []Message) (string, error)
}

// GeneratorFunc adapts a plain function to the Generator interface.
type GeneratorFunc func(ctx context.Context, messages []Message) (string, error)

func (f GeneratorFunc) Generate(ctx context.Context, messages []Message) (string, error) {
	return f(ctx, messages)
}
