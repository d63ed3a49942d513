package orchestrator

import "github.com/mariana/concept-panel/internal/llm"

const (
	// maxHistoryLen is the message count above which the conversation is
	// pruned before the next provider call.
	maxHistoryLen = 5
	// keepRecent is how many trailing messages (two user/assistant
	// exchanges) survive a prune alongside the system message.
	keepRecent = 4
)

// Conversation is an immutable message log for one generation run. Append
// and Prune return new values, so a failed provider call can simply discard
// the candidate conversation and retry from the previous state.
type Conversation struct {
	messages []llm.Message
}

// NewConversation starts a conversation with a system message.
func NewConversation(system string) Conversation {
	return Conversation{messages: []llm.Message{{Role: llm.RoleSystem, Content: system}}}
}

// Append returns a new conversation with one message added.
func (c Conversation) Append(role, content string) Conversation {
	messages := make([]llm.Message, len(c.messages), len(c.messages)+1)
	copy(messages, c.messages)
	return Conversation{messages: append(messages, llm.Message{Role: role, Content: content})}
}

// Prune bounds token growth across batches: once the log exceeds
// maxHistoryLen messages, only the system message and the most recent two
// exchanges are kept. That is enough recent context to steer the provider
// away from duplicating earlier output.
func (c Conversation) Prune() Conversation {
	if len(c.messages) <= maxHistoryLen {
		return c
	}

	pruned := make([]llm.Message, 0, 1+keepRecent)
	pruned = append(pruned, c.messages[0])
	pruned = append(pruned, c.messages[len(c.messages)-keepRecent:]...)
	return Conversation{messages: pruned}
}

// Messages returns a copy of the message log.
func (c Conversation) Messages() []llm.Message {
	out := make([]llm.Message, len(c.messages))
	copy(out, c.messages)
	return out
}

// Len returns the number of messages in the conversation.
func (c Conversation) Len() int {
	return len(c.messages)
}
