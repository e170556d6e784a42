package respond

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"luma-bot/internal/intent"
)

func composerAt(hour int) *Composer {
	at := time.Date(2024, 5, 2, hour, 30, 0, 0, time.UTC)
	return NewComposer(9, 18, nil).WithClock(func() time.Time { return at })
}

func TestTemplateSelection(t *testing.T) {
	cases := []struct {
		name   string
		hour   int
		intent intent.Label
		first  bool
		want   string
	}{
		{"after hours wins over intent", 22, intent.Urgent, true, "Hors horaires"},
		{"early morning is after hours", 7, intent.General, false, "Hors horaires"},
		{"urgent", 11, intent.Urgent, false, "URGENT - Pris en charge"},
		{"order", 11, intent.Order, false, "Commande en cours"},
		{"product", 11, intent.Product, false, "Questions produits"},
		{"first contact welcome", 11, intent.General, true, "Merci de contacter Harley Vape"},
		{"greeting first contact welcome", 11, intent.Greeting, true, "Merci de contacter Harley Vape"},
		{"returning general", 11, intent.General, false, "Merci pour votre message"},
		{"end hour still open", 18, intent.General, false, "Merci pour votre message"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := composerAt(tc.hour)
			out := c.Compose(context.Background(), Request{
				Text:         "peu importe",
				ContactName:  "Thomas",
				FirstContact: tc.first,
				Intent:       tc.intent,
			})
			require.Contains(t, out, tc.want)
		})
	}
}

func TestTemplateSelectionIsPure(t *testing.T) {
	c := composerAt(11)
	req := Request{Text: "bonjour", ContactName: "Léa", Intent: intent.Urgent}
	first := c.Compose(context.Background(), req)
	for i := 0; i < 5; i++ {
		require.Equal(t, first, c.Compose(context.Background(), req))
	}
}

func TestPlaceholderSubstitution(t *testing.T) {
	c := composerAt(22)
	out := c.Compose(context.Background(), Request{ContactName: "Thomas", Intent: intent.General})
	require.Contains(t, out, "Bonsoir Thomas !")
	require.Contains(t, out, "Il est 22:30")
	require.NotContains(t, out, "{name}")
	require.NotContains(t, out, "{time}")
}

func TestMissingNameFallsBack(t *testing.T) {
	c := composerAt(11)
	out := c.Compose(context.Background(), Request{Intent: intent.Urgent})
	require.Contains(t, out, "Bonjour client")
}

func TestUnknownPlaceholderLeftLiteral(t *testing.T) {
	// Only {name} and {time} are substituted; anything else stays as-is.
	at := time.Date(2024, 5, 2, 11, 5, 0, 0, time.UTC)
	filled := fillTemplate("{name} {time} {autre}", "Thomas", at)
	require.Equal(t, "Thomas 11:05 {autre}", filled)
}

type stubCompleter struct {
	out string
	err error
}

func (s stubCompleter) Complete(context.Context, Request) (string, error) { return s.out, s.err }

func TestAugmentedModeUsesCompletion(t *testing.T) {
	at := time.Date(2024, 5, 2, 11, 0, 0, 0, time.UTC)
	c := NewComposer(9, 18, stubCompleter{out: "  Réponse générée.  "}).
		WithClock(func() time.Time { return at })
	out := c.Compose(context.Background(), Request{ContactName: "Thomas", Intent: intent.General})
	require.Equal(t, "Réponse générée.", out)
}

func TestAugmentedModeFallsBackToTemplate(t *testing.T) {
	at := time.Date(2024, 5, 2, 11, 0, 0, 0, time.UTC)
	req := Request{ContactName: "Thomas", Intent: intent.Urgent}

	plain := NewComposer(9, 18, nil).WithClock(func() time.Time { return at })
	want := plain.Compose(context.Background(), req)

	for _, completer := range []Completer{
		stubCompleter{err: errors.New("timeout")},
		stubCompleter{out: "   "},
	} {
		c := NewComposer(9, 18, completer).WithClock(func() time.Time { return at })
		require.Equal(t, want, c.Compose(context.Background(), req))
	}
}
