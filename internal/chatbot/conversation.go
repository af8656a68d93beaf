package chatbot

import "sync"

// Conversation is a running dialogue with its transcript.
type Conversation struct {
	mu         sync.Mutex
	state      State
	transcript []Message
}

// NewConversation returns a closed conversation.
func NewConversation() *Conversation {
	return &Conversation{state: State{Kind: Root}}
}

// Send applies ev and returns the messages it produced. Opening the chat
// starts a fresh transcript.
func (c *Conversation) Send(ev Event) []Message {
	c.mu.Lock()
	defer c.mu.Unlock()

	next, msgs := Step(c.state, ev)
	if ev.Kind == EventOpen {
		c.transcript = nil
	}
	c.state = next
	c.transcript = append(c.transcript, msgs...)
	return msgs
}

// State returns the current dialogue state.
func (c *Conversation) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Transcript returns a copy of every message so far.
func (c *Conversation) Transcript() []Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Message, len(c.transcript))
	copy(out, c.transcript)
	return out
}

// Close returns the conversation to Root, keeping the transcript.
func (c *Conversation) Close() {
	c.mu.Lock()
	c.state = State{Kind: Root}
	c.mu.Unlock()
}
