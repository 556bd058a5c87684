package llmjudge

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/ehdgus4173/CheckMate/api"
)

// stubChatClient is a simple mock for unit tests
type stubChatClient struct {
	response []byte
	err      error
	lastReq  api.ChatRequest
}

func (s *stubChatClient) Complete(_ context.Context, req api.ChatRequest) ([]byte, error) {
	s.lastReq = req
	if s.err != nil {
		return nil, s.err
	}
	return s.response, nil
}

// envelope wraps content the way a chat completions response does.
func envelope(t *testing.T, content string) []byte {
	t.Helper()
	raw, err := json.Marshal(map[string]any{
		"choices": []map[string]any{
			{"message": map[string]any{"content": content}},
		},
	})
	if err != nil {
		t.Fatalf("building envelope: %v", err)
	}
	return raw
}

const testTemplate = "Requirement: %s\nDocument: %s"

func TestComplianceParsesResult(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name         string
		content      string
		wantStatus   string
		wantScore    float64
		wantMatched  int
		wantTotal    int
		wantEvidence string
		wantReason   string
	}{
		{
			name:         "complete result",
			content:      `{"status":"FULFILLED","score":0.9,"matchedKeywordCount":5,"totalKeywordCount":6,"evidence":"section 2 covers login","reason":"login flow described"}`,
			wantStatus:   api.StatusFulfilled,
			wantScore:    0.9,
			wantMatched:  5,
			wantTotal:    6,
			wantEvidence: "section 2 covers login",
			wantReason:   "login flow described",
		},
		{
			name:       "missing fields degrade to defaults",
			content:    `{}`,
			wantStatus: api.StatusNotFulfilled,
			wantScore:  0.0,
		},
		{
			name:         "reason falls back to evidence",
			content:      `{"status":"PARTIAL","score":0.4,"evidence":"only the login page exists"}`,
			wantStatus:   api.StatusPartial,
			wantScore:    0.4,
			wantEvidence: "only the login page exists",
			wantReason:   "only the login page exists",
		},
		{
			name:       "out-of-set status passes through unchanged",
			content:    `{"status":"MAYBE","score":0.5}`,
			wantStatus: "MAYBE",
			wantScore:  0.5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stub := &stubChatClient{response: envelope(t, tt.content)}
			evaluator := Compliance(stub, ComplianceOptions{Template: testTemplate})

			result, err := evaluator.Evaluate(ctx, api.Requirement{ID: 3, RawText: "req"}, "doc")
			if err != nil {
				t.Fatalf("Evaluate() unexpected error: %v", err)
			}

			if result.Status != tt.wantStatus {
				t.Errorf("status = %v, want %v", result.Status, tt.wantStatus)
			}
			if result.Score != tt.wantScore {
				t.Errorf("score = %v, want %v", result.Score, tt.wantScore)
			}
			if result.MatchedKeywordCount != tt.wantMatched {
				t.Errorf("matched = %v, want %v", result.MatchedKeywordCount, tt.wantMatched)
			}
			if result.TotalKeywordCount != tt.wantTotal {
				t.Errorf("total = %v, want %v", result.TotalKeywordCount, tt.wantTotal)
			}
			if result.Evidence != tt.wantEvidence {
				t.Errorf("evidence = %q, want %q", result.Evidence, tt.wantEvidence)
			}
			if result.Reason != tt.wantReason {
				t.Errorf("reason = %q, want %q", result.Reason, tt.wantReason)
			}
			if result.RequirementID != 3 {
				t.Errorf("requirementId = %v, want 3", result.RequirementID)
			}
		})
	}
}

func TestComplianceStructuralFailures(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name     string
		response []byte
	}{
		{name: "empty body", response: []byte("")},
		{name: "whitespace body", response: []byte("  \n ")},
		{name: "non-json envelope", response: []byte("gateway timeout")},
		{name: "no choices", response: []byte(`{"choices":[]}`)},
		{name: "blank content", response: []byte(`{"choices":[{"message":{"content":"  "}}]}`)},
		{name: "content is prose, not json", response: []byte(`{"choices":[{"message":{"content":"the document looks fine"}}]}`)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stub := &stubChatClient{response: tt.response}
			evaluator := Compliance(stub, ComplianceOptions{Template: testTemplate})

			_, err := evaluator.Evaluate(ctx, api.Requirement{RawText: "req"}, "doc")
			if !errors.Is(err, api.ErrMalformedResponse) {
				t.Errorf("Evaluate() error = %v, want ErrMalformedResponse", err)
			}
		})
	}
}

func TestComplianceTransportFailure(t *testing.T) {
	stub := &stubChatClient{err: errors.New("connection refused")}
	evaluator := Compliance(stub, ComplianceOptions{Template: testTemplate})

	_, err := evaluator.Evaluate(context.Background(), api.Requirement{RawText: "req"}, "doc")
	if !errors.Is(err, api.ErrLLMRequestFailed) {
		t.Fatalf("Evaluate() error = %v, want ErrLLMRequestFailed", err)
	}
	if errors.Is(err, api.ErrMalformedResponse) {
		t.Fatal("transport failures must stay distinguishable from malformed responses")
	}
}

func TestCompliancePromptConstruction(t *testing.T) {
	stub := &stubChatClient{response: envelope(t, `{"status":"FULFILLED","score":1.0}`)}
	evaluator := Compliance(stub, ComplianceOptions{Template: testTemplate})

	req := api.Requirement{ID: 1, RawText: "시스템은  로그인\n기능을 제공해야 한다"}
	result, err := evaluator.Evaluate(context.Background(), req, "doc\twith\t\ttabs")
	if err != nil {
		t.Fatalf("Evaluate() unexpected error: %v", err)
	}

	wantPrompt := "Requirement: 시스템은 로그인 기능을 제공해야 한다\nDocument: doc with tabs"
	if got := stub.lastReq.Messages[0].Content; got != wantPrompt {
		t.Errorf("prompt = %q, want %q", got, wantPrompt)
	}
	if stub.lastReq.Temperature != 0 {
		t.Errorf("temperature = %v, want 0", stub.lastReq.Temperature)
	}
	if stub.lastReq.Model != DefaultModel {
		t.Errorf("model = %q, want %q", stub.lastReq.Model, DefaultModel)
	}
	if stub.lastReq.Messages[0].Role != "user" {
		t.Errorf("role = %q, want user", stub.lastReq.Messages[0].Role)
	}

	// The result carries the original requirement text, not the
	// collapsed one used for the prompt.
	if result.RequirementText != req.RawText {
		t.Errorf("requirementText = %q, want the raw text", result.RequirementText)
	}
}

func TestComplianceConfiguration(t *testing.T) {
	ctx := context.Background()

	t.Run("custom model", func(t *testing.T) {
		stub := &stubChatClient{response: envelope(t, `{"status":"FULFILLED","score":1.0}`)}
		evaluator := Compliance(stub, ComplianceOptions{Template: testTemplate, Model: "gpt-4o"})
		if _, err := evaluator.Evaluate(ctx, api.Requirement{RawText: "req"}, "doc"); err != nil {
			t.Fatalf("Evaluate() unexpected error: %v", err)
		}
		if stub.lastReq.Model != "gpt-4o" {
			t.Errorf("model = %q, want gpt-4o", stub.lastReq.Model)
		}
	})

	t.Run("missing template", func(t *testing.T) {
		evaluator := Compliance(&stubChatClient{}, ComplianceOptions{})
		if _, err := evaluator.Evaluate(ctx, api.Requirement{RawText: "req"}, "doc"); !errors.Is(err, api.ErrPromptTemplate) {
			t.Errorf("Evaluate() error = %v, want ErrPromptTemplate", err)
		}
	})

	t.Run("missing chat client", func(t *testing.T) {
		evaluator := Compliance(nil, ComplianceOptions{Template: testTemplate})
		if _, err := evaluator.Evaluate(ctx, api.Requirement{RawText: "req"}, "doc"); err == nil {
			t.Error("Evaluate() expected an error with no chat client")
		}
	})
}
