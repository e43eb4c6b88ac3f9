package paywall

import (
	"bytes"
	"context"
	"fmt"
	"html/template"

	"github.com/allstories/studiokit/pkg/email"
	"github.com/allstories/studiokit/pkg/entitlement"
	"github.com/allstories/studiokit/pkg/trial"
)

// AddressLookup resolves a user's email address for notifications. The
// default implementation reads the session from context, which covers
// the common case of trials started from an authenticated request.
type AddressLookup func(ctx context.Context, t *trial.Trial) (string, error)

// TrialNotifier sends the trial-started welcome email. It implements
// trial.Notifier; the ledger treats delivery failures as non-fatal.
type TrialNotifier struct {
	sender email.Sender
	lookup AddressLookup
}

// NewTrialNotifier creates a notifier delivering through the given
// sender. Panics on a nil sender.
func NewTrialNotifier(sender email.Sender, lookup AddressLookup) *TrialNotifier {
	if sender == nil {
		panic("paywall: email Sender is required")
	}
	if lookup == nil {
		lookup = sessionAddressLookup
	}
	return &TrialNotifier{sender: sender, lookup: lookup}
}

func sessionAddressLookup(ctx context.Context, t *trial.Trial) (string, error) {
	sess, ok := entitlement.GetSessionFromContext(ctx)
	if !ok || sess.UserID != t.UserID || sess.Email == "" {
		return "", fmt.Errorf("no email address for user %s", t.UserID)
	}
	return sess.Email, nil
}

var trialStartedTmpl = template.Must(template.New("trial_started").Parse(`<p>Your free trial is live.</p>
<p>For the next {{.Days}} days you have Creator-level access: more stories, more characters and AI prompts to spark them.</p>
<p>Your trial ends on {{.EndsAt}}.</p>`))

func (n *TrialNotifier) TrialStarted(ctx context.Context, t *trial.Trial) error {
	to, err := n.lookup(ctx, t)
	if err != nil {
		return err
	}

	var body bytes.Buffer
	err = trialStartedTmpl.Execute(&body, map[string]any{
		"Days":   trial.TrialDays,
		"EndsAt": t.EndsAt.Format("January 2, 2006"),
	})
	if err != nil {
		return err
	}

	return n.sender.Send(ctx, email.Message{
		To:       to,
		Subject:  "Your free trial has started",
		BodyHTML: body.String(),
		Tag:      "trial-started",
	})
}
