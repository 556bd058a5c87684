package checkmate

import "github.com/ehdgus4173/CheckMate/api"

var (
	ErrInvalidInput      = api.ErrInvalidInput
	ErrPromptTemplate    = api.ErrPromptTemplate
	ErrLLMRequestFailed  = api.ErrLLMRequestFailed
	ErrMalformedResponse = api.ErrMalformedResponse
)
