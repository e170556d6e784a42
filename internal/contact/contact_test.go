package contact

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestTouchFirstInteraction(t *testing.T) {
	r := NewRegistry()

	c, first := r.Touch("33612345678@s.whatsapp.net", "Thomas")
	require.True(t, first)
	require.Equal(t, "Thomas", c.Name)
	require.Equal(t, 1, c.Interactions)

	c, first = r.Touch("33612345678@s.whatsapp.net", "Thomas")
	require.False(t, first)
	require.Equal(t, 2, c.Interactions)
}

func TestTouchNameFallbackAndRefresh(t *testing.T) {
	r := NewRegistry()

	c, _ := r.Touch("33612345678@s.whatsapp.net", "")
	require.Equal(t, "33612345678", c.Name)

	// A later pushed name replaces the derived token.
	c, _ = r.Touch("33612345678@s.whatsapp.net", "Thomas")
	require.Equal(t, "Thomas", c.Name)
}

func TestDeriveName(t *testing.T) {
	require.Equal(t, "33612345678", DeriveName("33612345678@s.whatsapp.net"))
	require.Equal(t, "+33612345678", DeriveName("whatsapp:+33612345678"))
	require.Equal(t, "+33612345678", DeriveName("+33612345678"))
}

func TestStats(t *testing.T) {
	r := NewRegistry()
	now := time.Date(2024, 5, 2, 12, 0, 0, 0, time.UTC)
	r.now = func() time.Time { return now }

	r.Touch("a", "")
	r.Touch("a", "")
	now = now.Add(-30 * time.Hour) // b last seen well in the past
	r.Touch("b", "")
	now = time.Date(2024, 5, 2, 12, 0, 0, 0, time.UTC)

	s := r.Stats()
	require.Equal(t, 2, s.TotalContacts)
	require.Equal(t, 3, s.TotalInteractions)
	require.Equal(t, 1, s.ActiveLast24h)
	require.Equal(t, 2, r.Count())
}
