// Package guard decides whether an inbound message deserves a reply at all.
package guard

import (
	"log"
	"strings"
	"sync"
	"time"
	"unicode/utf8"
)

type Config struct {
	// Cooldown is the minimum time between two admitted replies to the
	// same contact.
	Cooldown time.Duration
	// Signatures are substrings that only appear in our own outbound
	// messages (brand phrase, heart emoji, assistant name). A message
	// containing one is an echo of ourselves.
	Signatures []string
	// GreetingPrefix vetoes messages starting with our own greeting.
	GreetingPrefix string
	// MinLength is the minimum trimmed length (in runes) of a message.
	MinLength int
}

// Gate applies the anti-spam veto rules and owns the cooldown map.
type Gate struct {
	cfg Config

	mu        sync.Mutex
	lastReply map[string]time.Time

	now  func() time.Time
	stop chan struct{}
	once sync.Once
}

func New(cfg Config) *Gate {
	if cfg.Cooldown <= 0 {
		cfg.Cooldown = 30 * time.Second
	}
	if cfg.MinLength <= 0 {
		cfg.MinLength = 3
	}
	return &Gate{
		cfg:       cfg,
		lastReply: make(map[string]time.Time),
		now:       time.Now,
		stop:      make(chan struct{}),
	}
}

// ShouldRespond runs the four veto rules without recording anything.
func (g *Gate) ShouldRespond(contactID, text string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.check(contactID, text)
}

// Admit runs the veto rules and, on admission, records the cooldown
// timestamp in the same critical section. The timestamp is therefore
// written before any slow work starts, so two near-simultaneous messages
// from one contact cannot both be admitted within the window.
func (g *Gate) Admit(contactID, text string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if !g.check(contactID, text) {
		return false
	}
	g.lastReply[contactID] = g.now()
	return true
}

// MarkResponded records the cooldown timestamp for a contact directly.
func (g *Gate) MarkResponded(contactID string) {
	g.mu.Lock()
	g.lastReply[contactID] = g.now()
	g.mu.Unlock()
}

// check holds the rules; callers hold g.mu.
func (g *Gate) check(contactID, text string) bool {
	if g.isOwnEcho(text) {
		log.Printf("🚫 Message de %s détecté comme écho - Pas de réponse", contactID)
		return false
	}

	if last, ok := g.lastReply[contactID]; ok && g.now().Sub(last) < g.cfg.Cooldown {
		log.Printf("⏰ Cooldown actif pour %s - Pas de réponse", contactID)
		return false
	}

	trimmed := strings.TrimSpace(text)
	if utf8.RuneCountInString(trimmed) < g.cfg.MinLength {
		log.Println("📏 Message trop court - Pas de réponse")
		return false
	}

	if emojiOnly(trimmed) {
		log.Println("😀 Message émojis seulement - Pas de réponse")
		return false
	}

	return true
}

func (g *Gate) isOwnEcho(text string) bool {
	for _, sig := range g.cfg.Signatures {
		if sig != "" && strings.Contains(text, sig) {
			return true
		}
	}
	return g.cfg.GreetingPrefix != "" && strings.HasPrefix(text, g.cfg.GreetingPrefix)
}

// StartPurging launches the background sweep that drops cooldown records
// older than twice the window.
func (g *Gate) StartPurging(interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				g.Purge()
			case <-g.stop:
				return
			}
		}
	}()
}

// Purge removes entries older than twice the cooldown window.
func (g *Gate) Purge() {
	cutoff := g.now().Add(-2 * g.cfg.Cooldown)
	g.mu.Lock()
	for key, ts := range g.lastReply {
		if ts.Before(cutoff) {
			delete(g.lastReply, key)
		}
	}
	g.mu.Unlock()
}

func (g *Gate) Stop() {
	g.once.Do(func() { close(g.stop) })
}

// Size reports how many contacts currently hold a cooldown record.
func (g *Gate) Size() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.lastReply)
}

// Unicode ranges the emoji-only rule recognizes. A message made purely of
// these yields no reply.
var emojiRanges = [][2]rune{
	{0x1F600, 0x1F64F}, // emoticons
	{0x1F300, 0x1F5FF}, // symbols & pictographs
	{0x1F680, 0x1F6FF}, // transport & map
	{0x1F1E0, 0x1F1FF}, // regional indicators
	{0x2600, 0x26FF},   // misc symbols
	{0x2700, 0x27BF},   // dingbats
}

func emojiOnly(trimmed string) bool {
	if trimmed == "" {
		return false
	}
	for _, r := range trimmed {
		if !isEmoji(r) {
			return false
		}
	}
	return true
}

func isEmoji(r rune) bool {
	for _, rg := range emojiRanges {
		if r >= rg[0] && r <= rg[1] {
			return true
		}
	}
	return false
}
