package llmjudge

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ehdgus4173/CheckMate/api"
)

// DefaultModel is the completion model used when none is configured.
const DefaultModel = "gpt-4o-mini"

// ComplianceOptions configures the Compliance evaluator
type ComplianceOptions struct {
	// Model identifies the completion model. Empty means DefaultModel.
	Model string
	// Template is the prompt template text with two ordered %s
	// placeholders: requirement text first, document text second.
	// Load it once at startup with LoadTemplate.
	Template string
}

// Compliance returns an evaluator that renders the prompt template with one
// requirement and the full submission text, issues a single chat completion
// with temperature pinned to 0, and parses the JSON object the model is
// expected to return as its message content.
//
// Envelope parsing is strict: a blank body, a non-JSON body, or missing
// message content fails with ErrMalformedResponse. Individual result fields
// inside the content are permissive and degrade to defaults instead.
func Compliance(chat api.ChatClient, opts ComplianceOptions) api.Evaluator {
	return &complianceEvaluator{chat: chat, opts: opts}
}

type complianceEvaluator struct {
	chat api.ChatClient
	opts ComplianceOptions
}

func (e *complianceEvaluator) Evaluate(ctx context.Context, req api.Requirement, submissionText string) (api.EvaluationResult, error) {
	if e.chat == nil {
		return api.EvaluationResult{}, fmt.Errorf("chat client is required")
	}
	if e.opts.Template == "" {
		return api.EvaluationResult{}, fmt.Errorf("%w: no template configured", api.ErrPromptTemplate)
	}

	prompt := fmt.Sprintf(e.opts.Template, collapseSpace(req.RawText), collapseSpace(submissionText))

	model := e.opts.Model
	if model == "" {
		model = DefaultModel
	}

	raw, err := e.chat.Complete(ctx, api.ChatRequest{
		Model:       model,
		Temperature: 0,
		Messages: []api.ChatMessage{
			{Role: "user", Content: prompt},
		},
	})
	if err != nil {
		return api.EvaluationResult{}, fmt.Errorf("%w: %v", api.ErrLLMRequestFailed, err)
	}

	return parseResult(raw, req)
}

func parseResult(raw []byte, req api.Requirement) (api.EvaluationResult, error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return api.EvaluationResult{}, fmt.Errorf("%w: empty response body", api.ErrMalformedResponse)
	}

	var envelope struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return api.EvaluationResult{}, fmt.Errorf("%w: decoding envelope: %v", api.ErrMalformedResponse, err)
	}

	if len(envelope.Choices) == 0 || strings.TrimSpace(envelope.Choices[0].Message.Content) == "" {
		return api.EvaluationResult{}, fmt.Errorf("%w: no message content", api.ErrMalformedResponse)
	}

	// The model is expected to emit the result JSON as the body of its
	// text answer, not wrapped in prose or markdown fencing. The prompt
	// template enforces that; the parser does not relax it.
	var payload struct {
		Status              string  `json:"status"`
		Score               float64 `json:"score"`
		MatchedKeywordCount int     `json:"matchedKeywordCount"`
		TotalKeywordCount   int     `json:"totalKeywordCount"`
		Evidence            string  `json:"evidence"`
		Reason              string  `json:"reason"`
	}
	if err := json.Unmarshal([]byte(envelope.Choices[0].Message.Content), &payload); err != nil {
		return api.EvaluationResult{}, fmt.Errorf("%w: decoding content: %v", api.ErrMalformedResponse, err)
	}

	// Fields degrade individually. An absent status means NOT_FULFILLED,
	// but any non-empty status string passes through as the model wrote
	// it. An absent reason falls back to the evidence.
	status := payload.Status
	if status == "" {
		status = api.StatusNotFulfilled
	}
	reason := payload.Reason
	if reason == "" {
		reason = payload.Evidence
	}

	return api.EvaluationResult{
		RequirementID:       req.ID,
		RequirementText:     req.RawText,
		Status:              status,
		Score:               payload.Score,
		MatchedKeywordCount: payload.MatchedKeywordCount,
		TotalKeywordCount:   payload.TotalKeywordCount,
		Evidence:            payload.Evidence,
		Reason:              reason,
	}, nil
}

// collapseSpace squashes whitespace, newlines and tabs into single spaces
// and trims the ends. It tidies the prompt without altering content: no
// lower-casing, no character stripping.
func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
