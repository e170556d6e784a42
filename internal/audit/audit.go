// Package audit writes a local append-only trail of processed
// interactions, redacted for privacy. It stays available when the remote
// mirror is not.
package audit

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"
)

type Entry struct {
	Timestamp     string `json:"timestamp"`
	InteractionID string `json:"interaction_id"`
	Phone         string `json:"phone"`
	ContactName   string `json:"contact_name"`
	MessageIn     string `json:"message_in"`
	MessageOut    string `json:"message_out"`
	Intent        string `json:"intent"`
	Source        string `json:"source"`
}

type Logger struct {
	mu   sync.Mutex
	path string
	now  func() time.Time
}

func NewLogger(path string) *Logger {
	return &Logger{path: path, now: time.Now}
}

// Record masks the contact identifier, truncates both message bodies and
// appends one JSON line. Synchronous by design: the trail must not depend
// on goroutine scheduling at shutdown.
func (l *Logger) Record(e Entry) error {
	e.Timestamp = l.now().UTC().Format(time.RFC3339)
	e.Phone = MaskContact(e.Phone)
	e.MessageIn = truncate(e.MessageIn, 100)
	e.MessageOut = truncate(e.MessageOut, 100)

	line, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("marshal audit entry: %w", err)
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open audit log: %w", err)
	}
	defer f.Close()
	if _, err := f.Write(append(line, '\n')); err != nil {
		return fmt.Errorf("write audit log: %w", err)
	}
	return nil
}

// MaskContact keeps the first 8 characters of an identifier.
func MaskContact(id string) string {
	runes := []rune(id)
	if len(runes) <= 8 {
		return id + "****"
	}
	return string(runes[:8]) + "****"
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
