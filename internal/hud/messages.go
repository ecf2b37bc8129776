// Package hud keeps the short-lived on-screen messages shown to the player.
package hud

import "time"

// Message is one on-screen line and the time it has left.
type Message struct {
	Text string
	TTL  time.Duration
}

// Messages is a list of timed notices. Newest last.
// Accessed only from the tick goroutine.
type Messages struct {
	active []Message
	fresh  []string
	limit  int
}

// NewMessages returns a list that keeps at most limit active messages;
// the oldest is dropped when full. limit <= 0 means unbounded.
func NewMessages(limit int) *Messages {
	return &Messages{limit: limit}
}

func (m *Messages) Add(text string, ttl time.Duration) {
	if ttl <= 0 {
		return
	}
	m.active = append(m.active, Message{Text: text, TTL: ttl})
	if m.limit > 0 && len(m.active) > m.limit {
		m.active = m.active[len(m.active)-m.limit:]
	}
	m.fresh = append(m.fresh, text)
}

// Tick ages every message by dt and drops the expired ones.
func (m *Messages) Tick(dt time.Duration) {
	kept := m.active[:0]
	for _, msg := range m.active {
		msg.TTL -= dt
		if msg.TTL > 0 {
			kept = append(kept, msg)
		}
	}
	m.active = kept
}

// Active returns a copy of the messages still on screen.
func (m *Messages) Active() []Message {
	out := make([]Message, len(m.active))
	copy(out, m.active)
	return out
}

// Drain returns the texts added since the previous Drain.
func (m *Messages) Drain() []string {
	out := m.fresh
	m.fresh = nil
	return out
}
