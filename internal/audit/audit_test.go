package audit

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestMaskContact(t *testing.T) {
	require.Equal(t, "33612345****", MaskContact("33612345678@s.whatsapp.net"))
	require.Equal(t, "whatsapp****", MaskContact("whatsapp:+33612345678"))
	require.Equal(t, "+336****", MaskContact("+336"))
}

func TestRecordAppendsRedactedLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "interactions.log")
	l := NewLogger(path)
	l.now = func() time.Time { return time.Date(2024, 5, 2, 11, 0, 0, 0, time.UTC) }

	long := strings.Repeat("a", 150)
	require.NoError(t, l.Record(Entry{
		Phone:       "33612345678@s.whatsapp.net",
		ContactName: "Thomas",
		MessageIn:   long,
		MessageOut:  "Bonjour Thomas !",
		Intent:      "general",
		Source:      "whatsmeow",
	}))
	require.NoError(t, l.Record(Entry{Phone: "whatsapp:+3399", MessageIn: "deuxième", Intent: "order", Source: "twilio"}))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	var entries []Entry
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		var e Entry
		require.NoError(t, json.Unmarshal(sc.Bytes(), &e))
		entries = append(entries, e)
	}
	require.Len(t, entries, 2)

	require.Equal(t, "2024-05-02T11:00:00Z", entries[0].Timestamp)
	require.Equal(t, "33612345****", entries[0].Phone)
	require.Len(t, entries[0].MessageIn, 100)
	require.Equal(t, "Bonjour Thomas !", entries[0].MessageOut)
	require.Equal(t, "twilio", entries[1].Source)
}
