// Package respond selects and fills the outbound reply for an admitted
// message: deterministic templates, optionally augmented by a remote
// completion with the template as fallback.
package respond

import (
	"context"
	"log"
	"strings"
	"time"

	"luma-bot/internal/intent"
)

// Request carries everything template selection depends on.
type Request struct {
	Text         string
	ContactName  string
	FirstContact bool
	Intent       intent.Label
}

// Completer is the remote text-completion service. Any error falls back to
// the template output.
type Completer interface {
	Complete(ctx context.Context, req Request) (string, error)
}

type Composer struct {
	hoursStart int
	hoursEnd   int
	completer  Completer
	now        func() time.Time
}

func NewComposer(hoursStart, hoursEnd int, completer Completer) *Composer {
	return &Composer{
		hoursStart: hoursStart,
		hoursEnd:   hoursEnd,
		completer:  completer,
		now:        time.Now,
	}
}

// WithClock overrides the time source; selection is pure given the clock.
func (c *Composer) WithClock(now func() time.Time) *Composer {
	c.now = now
	return c
}

// Compose returns the reply text. The template is always selected first so
// a safe deterministic answer is in hand before the external call.
func (c *Composer) Compose(ctx context.Context, req Request) string {
	fallback := c.template(req)
	if c.completer == nil {
		return fallback
	}

	out, err := c.completer.Complete(ctx, req)
	if err != nil || strings.TrimSpace(out) == "" {
		log.Printf("⚠️  Complétion indisponible, utilisation du template local: %v", err)
		return fallback
	}
	return strings.TrimSpace(out)
}

// Template returns what template mode alone would produce.
func (c *Composer) Template(req Request) string {
	return c.template(req)
}

func (c *Composer) template(req Request) string {
	now := c.now()
	key := c.selectTemplate(now.Hour(), req)

	text := templates[key]
	if text == "" {
		text = templates[tplGeneral]
	}

	name := req.ContactName
	if name == "" {
		name = "client"
	}
	return fillTemplate(text, name, now)
}

// fillTemplate substitutes the known placeholders; anything else is left
// literal.
func fillTemplate(text, name string, now time.Time) string {
	return strings.NewReplacer(
		"{name}", name,
		"{time}", now.Format("15:04"),
	).Replace(text)
}

// Selection precedence: after-hours, then urgent, order and product
// intents, then first-contact welcome, then the general reply.
func (c *Composer) selectTemplate(hour int, req Request) string {
	switch {
	case hour < c.hoursStart || hour > c.hoursEnd:
		return tplAfterHours
	case req.Intent == intent.Urgent:
		return tplUrgent
	case req.Intent == intent.Order:
		return tplOrder
	case req.Intent == intent.Product:
		return tplProduct
	case req.FirstContact:
		return tplWelcome
	default:
		return tplGeneral
	}
}
