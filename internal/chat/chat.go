// Package chat holds the local conversation log and drives turns
// against the stateless remote chat endpoint.
package chat

import (
	"strings"
	"sync"
	"time"

	"github.com/dmateus/plantdoc/internal/api"
	"github.com/dmateus/plantdoc/internal/models"
)

// Fixed conversation strings. Failures become a normal assistant entry
// rather than an error: the log never contains a broken turn.
const (
	Greeting = "Hello! I'm your AI farming assistant. I can help you with plant disease diagnosis, treatment recommendations, and general farming advice. How can I assist you today?"

	emptyReplyMessage  = "I'm sorry, I couldn't come up with a response. Please try asking again."
	unavailableMessage = "I'm sorry, the assistant is unavailable right now. Please try again later."
)

// Conversation is an append-only message log seeded with one assistant
// greeting. One turn may be in flight at a time; a second Send while a
// reply is pending is a no-op rather than queued.
type Conversation struct {
	client api.PlantAPI

	mu   sync.Mutex
	log  []models.ChatMessage
	busy bool
}

// NewConversation creates a conversation holding only the greeting.
func NewConversation(client api.PlantAPI) *Conversation {
	return &Conversation{
		client: client,
		log: []models.ChatMessage{{
			Speaker:   models.SpeakerAssistant,
			Text:      Greeting,
			Timestamp: time.Now(),
		}},
	}
}

// Send runs one conversation turn: the user entry is appended
// immediately, the remote is called with the full prior log (greeting
// excluded) as role-tagged turns, and the reply is appended as the
// assistant entry. Blank text or an in-flight turn make it a no-op,
// reported by the return value. A completed turn always grows the log
// by exactly two entries.
func (c *Conversation) Send(text string) bool {
	text = strings.TrimSpace(text)
	if text == "" {
		return false
	}

	c.mu.Lock()
	if c.busy {
		c.mu.Unlock()
		return false
	}
	c.busy = true
	// The wire history is rebuilt from the log on every turn, so the log
	// is the single source of truth for what the remote sees.
	history := c.wireHistoryLocked()
	c.append(models.SpeakerUser, text)
	c.mu.Unlock()

	reply, err := c.client.Chat(history, text)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.busy = false
	switch {
	case err != nil:
		c.append(models.SpeakerAssistant, unavailableMessage)
	case strings.TrimSpace(reply) == "":
		c.append(models.SpeakerAssistant, emptyReplyMessage)
	default:
		c.append(models.SpeakerAssistant, reply)
	}
	return true
}

// Busy reports whether a turn is awaiting its reply.
func (c *Conversation) Busy() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.busy
}

// Log returns a copy of the conversation so far, greeting first.
func (c *Conversation) Log() []models.ChatMessage {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]models.ChatMessage, len(c.log))
	copy(out, c.log)
	return out
}

// wireHistoryLocked re-expresses the log as the endpoint's turn format.
// The greeting is local decoration and is excluded; assistant entries
// travel under the "model" role.
func (c *Conversation) wireHistoryLocked() []models.ChatTurn {
	turns := make([]models.ChatTurn, 0, len(c.log))
	for i, msg := range c.log {
		if i == 0 {
			continue
		}
		role := "user"
		if msg.Speaker == models.SpeakerAssistant {
			role = "model"
		}
		turns = append(turns, models.ChatTurn{
			Role:  role,
			Parts: []models.ChatPart{{Text: msg.Text}},
		})
	}
	return turns
}

func (c *Conversation) append(speaker models.Speaker, text string) {
	c.log = append(c.log, models.ChatMessage{
		Speaker:   speaker,
		Text:      text,
		Timestamp: time.Now(),
	})
}
