package report

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"github.com/ehdgus4173/CheckMate/api"
	"github.com/ehdgus4173/CheckMate/keyword"
)

// Summary aggregates one evaluation run for report rendering and the JSON
// analyze endpoint.
type Summary struct {
	Fulfilled    int                    `json:"fulfilled"`
	Partial      int                    `json:"partial"`
	NotFulfilled int                    `json:"notFulfilled"`
	Details      []api.EvaluationResult `json:"details"`
}

// FinalScore blends the verdict counts into a 0-100 grade, counting partial
// fulfillment at half weight.
func (s Summary) FinalScore() float64 {
	total := s.Fulfilled + s.Partial + s.NotFulfilled
	if total == 0 {
		return 0
	}
	return (float64(s.Fulfilled) + 0.5*float64(s.Partial)) / float64(total) * 100
}

// Service runs a full evaluation: split the requirements document into
// items, judge each against the submission, aggregate.
type Service struct {
	evaluator api.Evaluator
	log       *zap.Logger
}

func NewService(evaluator api.Evaluator, log *zap.Logger) *Service {
	return &Service{evaluator: evaluator, log: log}
}

// Run evaluates every requirement found in requirementsText against
// submissionText. Results keep document order.
func (s *Service) Run(ctx context.Context, requirementsText, submissionText string) (Summary, error) {
	reqs := SplitRequirements(requirementsText)
	if len(reqs) == 0 {
		return Summary{}, fmt.Errorf("%w: no requirements found in document", api.ErrInvalidInput)
	}

	s.log.Info("evaluating requirements", zap.Int("count", len(reqs)))

	var results []api.EvaluationResult

	// The keyword matcher normalizes the submission once per batch, so
	// prefer its batch entry point when it is the configured strategy.
	if matcher, ok := s.evaluator.(*keyword.Matcher); ok {
		results = matcher.EvaluateAll(ctx, reqs, submissionText)
	} else {
		results = make([]api.EvaluationResult, 0, len(reqs))
		for _, req := range reqs {
			if req == nil {
				continue
			}
			result, err := s.evaluator.Evaluate(ctx, *req, submissionText)
			if err != nil {
				return Summary{}, fmt.Errorf("evaluating requirement %d: %w", req.ID, err)
			}
			s.log.Debug("requirement evaluated",
				zap.Int64("id", result.RequirementID),
				zap.String("status", result.Status),
				zap.Float64("score", result.Score),
			)
			results = append(results, result)
		}
	}

	return BuildSummary(results), nil
}

// leadingMarker matches list numbering and bullets at the start of a line.
var leadingMarker = regexp.MustCompile(`^\s*(?:\d+[.)]|[-*•])\s*`)

// SplitRequirements turns a requirements document into discrete items: one
// per non-blank line, leading numbering or bullets stripped, ids assigned
// sequentially from 1.
func SplitRequirements(text string) []*api.Requirement {
	var reqs []*api.Requirement

	var id int64
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(leadingMarker.ReplaceAllString(line, ""))
		if line == "" {
			continue
		}
		id++
		reqs = append(reqs, &api.Requirement{ID: id, RawText: line})
	}

	return reqs
}

// BuildSummary tallies verdicts. Results are carried through unchanged.
func BuildSummary(results []api.EvaluationResult) Summary {
	summary := Summary{Details: results}
	for _, r := range results {
		switch r.Status {
		case api.StatusFulfilled:
			summary.Fulfilled++
		case api.StatusPartial:
			summary.Partial++
		default:
			summary.NotFulfilled++
		}
	}
	return summary
}

// RenderText renders the summary as the plain-text report returned by the
// report endpoint.
func RenderText(s Summary) string {
	var b strings.Builder

	b.WriteString("CheckMate Report\n")
	b.WriteString("================\n\n")

	for _, r := range s.Details {
		fmt.Fprintf(&b, "[%d] %s (score %.2f, keywords %d/%d)\n",
			r.RequirementID, r.Status, r.Score, r.MatchedKeywordCount, r.TotalKeywordCount)
		fmt.Fprintf(&b, "    %s\n", r.RequirementText)
		if r.Reason != "" {
			fmt.Fprintf(&b, "    reason: %s\n", r.Reason)
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "Summary: fulfilled %d, partial %d, not fulfilled %d\n",
		s.Fulfilled, s.Partial, s.NotFulfilled)
	fmt.Fprintf(&b, "Final score: %.1f / 100\n", s.FinalScore())

	return b.String()
}
