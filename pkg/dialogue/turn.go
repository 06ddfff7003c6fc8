// Package dialogue holds the in-memory conversation log for one client session.
package dialogue

// Role identifies the author of a turn.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Turn represents a single message in a conversation.
type Turn struct {
	Role    string `json:"role"`    // "user" or "assistant"
	Content string `json:"content"` // The message content
}
