package store

import "time"

// Turn is a single role-tagged message held in per-session conversation memory.
type Turn struct {
	Role      string    `json:"role"` // "user" | "assistant"
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"

	// Memory scopes. The rewriter and the answer generator keep separate threads
	// under the same session id.
	ScopeRewriter = "rewriter"
	ScopeAnswer   = "answer"
)
