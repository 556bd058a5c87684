package llmjudge

import (
	"context"
	"fmt"

	"github.com/ehdgus4173/CheckMate/api"
)

// StructuredOptions configures the Structured evaluator
type StructuredOptions struct {
	// Template is the prompt template text, same contract as
	// ComplianceOptions.Template.
	Template string
}

// Structured returns an evaluator with the same verdict contract as
// Compliance, but driven through a provider that supports schema-constrained
// JSON output. Unlike the chat-completion path, the schema restricts the
// status field to the closed enumeration, so out-of-set values cannot occur
// here.
func Structured(llm api.LLMGenerator, opts StructuredOptions) api.Evaluator {
	return &structuredEvaluator{llm: llm, opts: opts}
}

type structuredEvaluator struct {
	llm  api.LLMGenerator
	opts StructuredOptions
}

var resultSchema = map[string]interface{}{
	"type": "object",
	"properties": map[string]interface{}{
		"status": map[string]interface{}{
			"type":        "string",
			"enum":        []string{api.StatusFulfilled, api.StatusPartial, api.StatusNotFulfilled},
			"description": "Verdict for the requirement",
		},
		"score": map[string]interface{}{
			"type":        "number",
			"description": "Confidence in [0,1]",
		},
		"matchedKeywordCount": map[string]interface{}{
			"type": "integer",
		},
		"totalKeywordCount": map[string]interface{}{
			"type": "integer",
		},
		"evidence": map[string]interface{}{
			"type":        "string",
			"description": "Which parts of the document satisfy the requirement",
		},
		"reason": map[string]interface{}{
			"type":        "string",
			"description": "Final justification for the verdict",
		},
	},
	"required": []string{"status", "score"},
}

func (e *structuredEvaluator) Evaluate(ctx context.Context, req api.Requirement, submissionText string) (api.EvaluationResult, error) {
	if e.llm == nil {
		return api.EvaluationResult{}, fmt.Errorf("LLM generator is required")
	}
	if e.opts.Template == "" {
		return api.EvaluationResult{}, fmt.Errorf("%w: no template configured", api.ErrPromptTemplate)
	}

	prompt := fmt.Sprintf(e.opts.Template, collapseSpace(req.RawText), collapseSpace(submissionText))

	response, err := e.llm.StructuredGenerate(ctx, prompt, resultSchema)
	if err != nil {
		return api.EvaluationResult{}, fmt.Errorf("%w: %v", api.ErrLLMRequestFailed, err)
	}

	status := stringField(response, "status")
	if status == "" {
		status = api.StatusNotFulfilled
	}
	evidence := stringField(response, "evidence")
	reason := stringField(response, "reason")
	if reason == "" {
		reason = evidence
	}

	return api.EvaluationResult{
		RequirementID:       req.ID,
		RequirementText:     req.RawText,
		Status:              status,
		Score:               numberField(response, "score"),
		MatchedKeywordCount: intField(response, "matchedKeywordCount"),
		TotalKeywordCount:   intField(response, "totalKeywordCount"),
		Evidence:            evidence,
		Reason:              reason,
	}, nil
}

func stringField(m map[string]interface{}, key string) string {
	s, _ := m[key].(string)
	return s
}

func numberField(m map[string]interface{}, key string) float64 {
	f, _ := m[key].(float64)
	return f
}

func intField(m map[string]interface{}, key string) int {
	// JSON numbers decode as float64
	return int(numberField(m, key))
}
