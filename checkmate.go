package checkmate

import (
	"github.com/ehdgus4173/CheckMate/api"
	"github.com/ehdgus4173/CheckMate/keyword"
	"github.com/ehdgus4173/CheckMate/llmjudge"
)

type Requirement = api.Requirement
type EvaluationResult = api.EvaluationResult
type Evaluator = api.Evaluator
type ChatClient = api.ChatClient
type LLMGenerator = api.LLMGenerator

const (
	StatusFulfilled    = api.StatusFulfilled
	StatusPartial      = api.StatusPartial
	StatusNotFulfilled = api.StatusNotFulfilled
)

type KeywordOptions = keyword.Options

// NewKeywordEvaluator returns the deterministic keyword-overlap evaluator.
// It also exposes EvaluateAll for batch runs against one submission.
func NewKeywordEvaluator(opts KeywordOptions) *keyword.Matcher {
	return keyword.NewMatcher(opts)
}

// LLMJudge wraps LLM transports and exposes convenient constructors for
// LLM-backed evaluators without passing the clients each time.
type LLMJudge struct {
	chat     api.ChatClient
	llm      api.LLMGenerator
	model    string
	template string
}

// LLMJudgeOptions configures LLMJudge creation
type LLMJudgeOptions struct {
	chat     api.ChatClient
	llm      api.LLMGenerator
	model    string
	template string
}

// WithChatClient sets the raw chat completion transport for the judge
func WithChatClient(chat api.ChatClient) func(*LLMJudgeOptions) {
	return func(opts *LLMJudgeOptions) {
		opts.chat = chat
	}
}

// WithLLMGenerator sets the structured generator for the judge
func WithLLMGenerator(llm api.LLMGenerator) func(*LLMJudgeOptions) {
	return func(opts *LLMJudgeOptions) {
		opts.llm = llm
	}
}

// WithModel sets the completion model identifier
func WithModel(model string) func(*LLMJudgeOptions) {
	return func(opts *LLMJudgeOptions) {
		opts.model = model
	}
}

// WithTemplate sets the prompt template text (see llmjudge.LoadTemplate)
func WithTemplate(template string) func(*LLMJudgeOptions) {
	return func(opts *LLMJudgeOptions) {
		opts.template = template
	}
}

// NewLLMJudge creates a new judge wrapper using functional options.
func NewLLMJudge(opts ...func(*LLMJudgeOptions)) *LLMJudge {
	options := &LLMJudgeOptions{}
	for _, opt := range opts {
		opt(options)
	}
	return &LLMJudge{
		chat:     options.chat,
		llm:      options.llm,
		model:    options.model,
		template: options.template,
	}
}

// Compliance returns an evaluator that judges one requirement against the
// submission through a chat completion call.
func (j *LLMJudge) Compliance() api.Evaluator {
	return llmjudge.Compliance(j.chat, llmjudge.ComplianceOptions{
		Model:    j.model,
		Template: j.template,
	})
}

// StructuredCompliance returns the schema-constrained variant for providers
// that support structured output.
func (j *LLMJudge) StructuredCompliance() api.Evaluator {
	return llmjudge.Structured(j.llm, llmjudge.StructuredOptions{
		Template: j.template,
	})
}
