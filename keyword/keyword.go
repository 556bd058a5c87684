package keyword

import (
	"context"
	"strings"

	"github.com/ehdgus4173/CheckMate/api"
)

const defaultFulfilledThreshold = 0.6

// Options configures the keyword Matcher
type Options struct {
	// FulfilledThreshold is the match ratio at or above which a
	// requirement is judged FULFILLED. Zero means the default of 0.6.
	FulfilledThreshold float64
}

// Matcher is the deterministic evaluator: it splits a requirement into
// keywords, tests each for substring containment in the normalized
// submission, and maps the match ratio to a verdict. It holds no mutable
// state and is safe for concurrent use.
type Matcher struct {
	threshold float64
}

// NewMatcher creates a keyword Matcher.
func NewMatcher(opts Options) *Matcher {
	threshold := opts.FulfilledThreshold
	if threshold <= 0 {
		threshold = defaultFulfilledThreshold
	}
	return &Matcher{threshold: threshold}
}

// Evaluate judges one requirement against one submission text. It is total
// over its inputs: empty text never produces an error, only a
// NOT_FULFILLED verdict.
func (m *Matcher) Evaluate(_ context.Context, req api.Requirement, submissionText string) (api.EvaluationResult, error) {
	return m.evaluateNormalized(req, Normalize(submissionText)), nil
}

// EvaluateAll judges an ordered list of requirements against one submission
// text. The submission is normalized once for the whole batch. Results keep
// the input order; nil requirement entries are skipped silently, so the
// output may be shorter than the input.
func (m *Matcher) EvaluateAll(_ context.Context, reqs []*api.Requirement, submissionText string) []api.EvaluationResult {
	results := make([]api.EvaluationResult, 0, len(reqs))
	if len(reqs) == 0 {
		return results
	}

	normalizedSubmission := Normalize(submissionText)

	for _, req := range reqs {
		if req == nil {
			continue
		}
		results = append(results, m.evaluateNormalized(*req, normalizedSubmission))
	}

	return results
}

func (m *Matcher) evaluateNormalized(req api.Requirement, normalizedSubmission string) api.EvaluationResult {
	tokens := strings.Fields(Normalize(req.RawText))

	// Token occurrences are deliberately not deduplicated: a token that
	// recurs in the requirement counts toward both totals each time.
	total := 0
	matched := 0
	for _, token := range tokens {
		if isStopWord(token) {
			continue
		}
		total++
		if strings.Contains(normalizedSubmission, token) {
			matched++
		}
	}

	status := api.StatusNotFulfilled
	score := 0.0

	if total > 0 {
		ratio := float64(matched) / float64(total)
		switch {
		case ratio >= m.threshold:
			status = api.StatusFulfilled
			// Fixed at 1.0 once the threshold clears; a fulfilled
			// verdict always reports full confidence.
			score = 1.0
		case matched > 0:
			status = api.StatusPartial
			score = ratio
		}
	}

	return api.EvaluationResult{
		RequirementID:       req.ID,
		RequirementText:     req.RawText,
		Status:              status,
		Score:               score,
		MatchedKeywordCount: matched,
		TotalKeywordCount:   total,
	}
}

var _ api.Evaluator = (*Matcher)(nil)
