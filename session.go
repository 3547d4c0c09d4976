package useradmin

import (
	"encoding/json"
	"fmt"

	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/google/uuid"
)

// Principal is the minimal identity carried by the session: enough to greet
// the user and authorize the private area, never credential fields.
type Principal struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
	Role UserRole  `json:"role"`
}

// PrincipalFromAccount reduces an account to its session principal
func PrincipalFromAccount(a *Account) *Principal {
	if a == nil {
		return nil
	}
	return &Principal{
		ID:   a.ID,
		Name: a.Name,
		Role: a.Role,
	}
}

// Authenticated reports whether p identifies a logged-in user
func (p *Principal) Authenticated() bool {
	return p != nil && p.ID != uuid.Nil
}

const (
	sessionUserKey     = "user"
	sessionMessagesKey = "messages"
)

var _ SessionWriter = (*FiberSession)(nil)

// FiberSession adapts a fiber session to the workflow engine's SessionWriter
// and gives the controller the read side. Mutations are buffered in the
// underlying session; Save persists them once per request.
type FiberSession struct {
	sess *session.Session
}

// NewFiberSession wraps a fiber session
func NewFiberSession(sess *session.Session) *FiberSession {
	return &FiberSession{sess: sess}
}

// Principal decodes the current principal, nil when unauthenticated
func (s *FiberSession) Principal() *Principal {
	if s.sess == nil {
		return nil
	}

	raw, ok := s.sess.Get(sessionUserKey).(string)
	if !ok || raw == "" {
		return nil
	}

	p := &Principal{}
	if err := json.Unmarshal([]byte(raw), p); err != nil {
		return nil
	}
	return p
}

// SetPrincipal serializes p into the session
func (s *FiberSession) SetPrincipal(p *Principal) error {
	if s.sess == nil {
		return ErrSessionUnavailable
	}

	if p == nil {
		return ErrNoEmptyString
	}

	raw, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("unable to serialize principal: %w", err)
	}

	s.sess.Set(sessionUserKey, string(raw))
	return nil
}

// ClearPrincipal removes the principal from the session
func (s *FiberSession) ClearPrincipal() error {
	if s.sess == nil {
		return ErrSessionUnavailable
	}
	s.sess.Delete(sessionUserKey)
	return nil
}

// Flash appends msg to the session's message queue
func (s *FiberSession) Flash(msg Message) error {
	if s.sess == nil {
		return ErrSessionUnavailable
	}

	queue := s.flashQueue()
	queue = append(queue, msg)

	raw, err := json.Marshal(queue)
	if err != nil {
		return fmt.Errorf("unable to serialize messages: %w", err)
	}

	s.sess.Set(sessionMessagesKey, string(raw))
	return nil
}

// DrainFlash returns the queued messages and clears the queue. Messages are
// read at most once.
func (s *FiberSession) DrainFlash() []Message {
	if s.sess == nil {
		return nil
	}

	queue := s.flashQueue()
	if len(queue) > 0 {
		s.sess.Delete(sessionMessagesKey)
	}
	return queue
}

// Save persists buffered session mutations
func (s *FiberSession) Save() error {
	if s.sess == nil {
		return ErrSessionUnavailable
	}
	return s.sess.Save()
}

func (s *FiberSession) flashQueue() []Message {
	raw, ok := s.sess.Get(sessionMessagesKey).(string)
	if !ok || raw == "" {
		return nil
	}

	var queue []Message
	if err := json.Unmarshal([]byte(raw), &queue); err != nil {
		return nil
	}
	return queue
}
