package search

import "github.com/pubfindco/pubfind/pkg/dialogue"

// ChatRequest represents a query sent to the search service's chat endpoint.
type ChatRequest struct {
	Query               string          `json:"query"`                // The user's natural-language query
	ConversationHistory []dialogue.Turn `json:"conversation_history"` // Full dialogue context, oldest first
}
