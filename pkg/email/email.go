package email

import (
	"context"
	"fmt"
	"regexp"
)

// Sender delivers a single transactional email.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// Message is a single outbound email.
type Message struct {
	To       string `json:"to"`
	Subject  string `json:"subject"`
	BodyHTML string `json:"body_html"`
	Tag      string `json:"tag,omitempty"`
}

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// Validate checks that the message is deliverable.
func (m Message) Validate() error {
	if m.To == "" {
		return fmt.Errorf("%w: To is required", ErrInvalidMessage)
	}
	if !emailRegex.MatchString(m.To) {
		return fmt.Errorf("%w: To must be a valid email address", ErrInvalidMessage)
	}
	if m.Subject == "" {
		return fmt.Errorf("%w: Subject is required", ErrInvalidMessage)
	}
	if m.BodyHTML == "" {
		return fmt.Errorf("%w: BodyHTML is required", ErrInvalidMessage)
	}
	return nil
}
