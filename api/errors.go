package api

import "errors"

var (
	// ErrInvalidInput is returned for client-caused problems: empty or
	// oversized uploads, unsupported document types, extracted text too
	// short to analyze.
	ErrInvalidInput = errors.New("invalid input")
	// ErrPromptTemplate is returned when the external prompt template
	// asset is missing or unreadable. This is a fatal configuration error
	// and must not be retried per request.
	ErrPromptTemplate = errors.New("prompt template unavailable")
	// ErrLLMRequestFailed is returned when the completion call itself
	// fails (network, non-2xx, timeout). The underlying cause is preserved
	// in the wrapped message.
	ErrLLMRequestFailed = errors.New("LLM request failed")
	// ErrMalformedResponse is returned when the completion response
	// envelope or its nested content is not the expected JSON, or the
	// content is blank. Distinct from ErrLLMRequestFailed so callers can
	// tell "the model said something nonsensical" from "the network
	// failed".
	ErrMalformedResponse = errors.New("malformed LLM response")
)
