// Package bot wires admission, classification, composition, sending and
// mirroring into one processing pipeline shared by both transports.
package bot

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"luma-bot/internal/audit"
	"luma-bot/internal/contact"
	"luma-bot/internal/guard"
	"luma-bot/internal/intent"
	"luma-bot/internal/respond"
)

// ErrNotAdmitted marks messages vetoed by the admission filter; they
// produce no reply and are not an error condition.
var ErrNotAdmitted = errors.New("message not admitted")

// Inbound is one received message, normalized across transports.
type Inbound struct {
	From        string
	Text        string
	ContactName string
	MessageID   string
	Timestamp   time.Time
	Source      string
}

// Sender pushes a reply back through a transport. Sends may be dropped
// (e.g. transport not ready); they are never retried here.
type Sender interface {
	Send(ctx context.Context, to, text string) error
	Ready() bool
}

// Composer produces the reply text for an admitted message.
type Composer interface {
	Compose(ctx context.Context, req respond.Request) string
}

// Interaction is one processed exchange handed to the mirror.
type Interaction struct {
	ID          string
	ContactID   string
	ContactName string
	Text        string
	Response    string
	Intent      intent.Label
	Source      string
	Elapsed     time.Duration
}

// MirrorOutcome reports per-record results of a mirror attempt. Mirroring
// is telemetry: the caller may inspect it or throw it away.
type MirrorOutcome struct {
	Hub         error
	Command     error
	Dashboard   error
	Integration error
}

func (o MirrorOutcome) Failures() int {
	n := 0
	for _, err := range []error{o.Hub, o.Command, o.Dashboard, o.Integration} {
		if err != nil {
			n++
		}
	}
	return n
}

// Mirror replicates an interaction to the external workspace, best effort.
type Mirror interface {
	Mirror(ctx context.Context, it Interaction) MirrorOutcome
}

type Config struct {
	BusinessName string
	// AutoRespond is the operator kill switch; when false every inbound
	// message is treated as not admitted.
	AutoRespond bool
	// ResponseDelay humanizes replies; applied per message before sending.
	ResponseDelay time.Duration
	MirrorTimeout time.Duration
}

type Service struct {
	cfg      Config
	gate     *guard.Gate
	contacts *contact.Registry
	composer Composer
	sender   Sender
	mirror   Mirror        // nil disables remote mirroring
	audit    *audit.Logger // nil disables the local trail

	sleep func(time.Duration)
	now   func() time.Time
}

func New(cfg Config, gate *guard.Gate, contacts *contact.Registry, composer Composer, sender Sender, mirror Mirror, auditLog *audit.Logger) *Service {
	if cfg.MirrorTimeout <= 0 {
		cfg.MirrorTimeout = 15 * time.Second
	}
	return &Service{
		cfg:      cfg,
		gate:     gate,
		contacts: contacts,
		composer: composer,
		sender:   sender,
		mirror:   mirror,
		audit:    auditLog,
		sleep:    time.Sleep,
		now:      time.Now,
	}
}

// Process runs one inbound message through the pipeline and returns the
// reply that was dispatched. ErrNotAdmitted means the message was vetoed.
// A panic anywhere in processing degrades to the fallback apology so no
// admitted message goes unanswered.
func (s *Service) Process(ctx context.Context, in Inbound) (reply string, err error) {
	start := s.now()

	defer func() {
		if r := recover(); r != nil {
			log.Printf("💥 Erreur inattendue pendant le traitement de %s: %v", in.From, r)
			reply = s.fallbackReply(in)
			if sendErr := s.sender.Send(context.Background(), in.From, reply); sendErr != nil {
				log.Printf("❌ Erreur envoi fallback: %v", sendErr)
			}
			s.record(in, reply, intent.General, s.now().Sub(start))
			err = nil
		}
	}()

	if !s.cfg.AutoRespond {
		return "", ErrNotAdmitted
	}
	if !s.gate.Admit(in.From, in.Text) {
		return "", ErrNotAdmitted
	}

	ctxInfo, first := s.contacts.Touch(in.From, in.ContactName)
	label := intent.Classify(in.Text)
	log.Printf("📱 Message de %s (%s) - intention: %s", ctxInfo.Name, in.Source, label)

	reply = s.composer.Compose(ctx, respond.Request{
		Text:         in.Text,
		ContactName:  ctxInfo.Name,
		FirstContact: first,
		Intent:       label,
	})

	s.sleep(s.cfg.ResponseDelay)

	sendErr := s.sender.Send(ctx, in.From, reply)
	if sendErr != nil {
		log.Printf("❌ Erreur envoi message à %s: %v", in.From, sendErr)
	} else {
		log.Printf("📤 Réponse envoyée à %s: %s", in.From, truncate(reply, 50))
	}

	// Mirroring and the audit trail run regardless of send success.
	s.record(in, reply, label, s.now().Sub(start))
	return reply, sendErr
}

func (s *Service) fallbackReply(in Inbound) string {
	name := in.ContactName
	if name == "" {
		name = contact.DeriveName(in.From)
	}
	return fmt.Sprintf("Bonjour %s ! Merci pour votre message. Notre équipe %s vous répond très rapidement ! 😊",
		name, s.cfg.BusinessName)
}

func (s *Service) record(in Inbound, reply string, label intent.Label, elapsed time.Duration) {
	it := Interaction{
		ID:          uuid.NewString(),
		ContactID:   in.From,
		ContactName: in.ContactName,
		Text:        in.Text,
		Response:    reply,
		Intent:      label,
		Source:      in.Source,
		Elapsed:     elapsed,
	}

	if s.audit != nil {
		if err := s.audit.Record(audit.Entry{
			InteractionID: it.ID,
			Phone:         in.From,
			ContactName:   in.ContactName,
			MessageIn:     in.Text,
			MessageOut:    reply,
			Intent:        string(label),
			Source:        in.Source,
		}); err != nil {
			log.Printf("⚠️  Erreur journal local: %v", err)
		}
	}

	if s.mirror == nil {
		return
	}
	go func() {
		mctx, cancel := context.WithTimeout(context.Background(), s.cfg.MirrorTimeout)
		defer cancel()
		out := s.mirror.Mirror(mctx, it)
		if n := out.Failures(); n > 0 {
			log.Printf("⚠️  Miroir Notion: %d enregistrement(s) en échec pour %s", n, in.From)
		}
	}()
}

// Contacts exposes the registry for the monitoring endpoints.
func (s *Service) Contacts() *contact.Registry { return s.contacts }

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}
