package api

import "context"

// Evaluation statuses. This is a closed set: every evaluator maps its
// verdict onto exactly one of these three values.
const (
	StatusFulfilled    = "FULFILLED"
	StatusPartial      = "PARTIAL"
	StatusNotFulfilled = "NOT_FULFILLED"
)

// Requirement is one discrete clause extracted from a requirements document.
// IDs are assigned by whatever splits the document into items and are stable
// within a single evaluation run.
type Requirement struct {
	ID      int64  `json:"id"`
	RawText string `json:"rawText"`
}

// EvaluationResult is the verdict for a single requirement. Both evaluator
// strategies produce this same shape, so downstream report generation does
// not care which one ran.
type EvaluationResult struct {
	// RequirementID echoes the source requirement's id. Zero when the
	// caller evaluates a single requirement outside a batch context.
	RequirementID int64 `json:"requirementId"`
	// RequirementText is the requirement's raw text, carried through for
	// report rendering.
	RequirementText string `json:"requirementText"`
	// Status is one of StatusFulfilled, StatusPartial, StatusNotFulfilled.
	Status string `json:"status"`
	// Score is in [0.0, 1.0].
	Score float64 `json:"score"`
	// MatchedKeywordCount is how many requirement keywords were found in
	// the submission. Always <= TotalKeywordCount.
	MatchedKeywordCount int `json:"matchedKeywordCount"`
	// TotalKeywordCount is the number of keywords the requirement yields
	// after normalization and stop-word filtering.
	TotalKeywordCount int `json:"totalKeywordCount"`
	// Evidence explains the verdict: a keyword summary in deterministic
	// mode, a model-generated rationale in LLM mode.
	Evidence string `json:"evidence"`
	// Reason is the final justification. Falls back to Evidence when the
	// model does not supply it separately.
	Reason string `json:"reason"`
}

// Evaluator judges one requirement against one submission text.
// Implementations must be safe for concurrent use; any batching, timeout or
// retry policy belongs to the caller.
type Evaluator interface {
	Evaluate(ctx context.Context, req Requirement, submissionText string) (EvaluationResult, error)
}

// ChatMessage is a single role/content pair in a chat completion request.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatRequest is the minimal request shape the engine needs from a chat
// completion provider. Richer provider-specific fields are out of contract.
type ChatRequest struct {
	Model       string        `json:"model"`
	Temperature float64       `json:"temperature"`
	Messages    []ChatMessage `json:"messages"`
}

// ChatClient issues one synchronous chat completion request and returns the
// provider's raw JSON response body. The caller owns envelope parsing, so
// transport failures and malformed responses stay distinguishable.
// An OpenAI-compatible implementation is provided in the openai subpackage.
type ChatClient interface {
	Complete(ctx context.Context, req ChatRequest) ([]byte, error)
}

// LLMGenerator is an interface for generating structured data using an LLM.
// This interface must be implemented by library consumers.
// A Gemini implementation is provided in the gemini subpackage.
type LLMGenerator interface {
	// StructuredGenerate generates structured data based on the provided
	// prompt and JSON schema. schema must be a valid JSON schema
	// (map[string]interface{}).
	StructuredGenerate(ctx context.Context, prompt string, schema map[string]interface{}) (map[string]interface{}, error)
}
