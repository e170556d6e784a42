package intent

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		text string
		want Label
	}{
		{"J'ai un problème avec mon colis", Urgent},
		{"URGENT réponds moi", Urgent},
		{"où en est ma commande ?", Order},
		{"tracking number svp", Order},
		{"quel est le prix du geekbar ?", Product},
		{"avez-vous du stock ?", Product},
		{"Bonjour !", Greeting},
		{"hello there", Greeting},
		{"merci beaucoup", Thanks},
		{"c'est parfait", Thanks},
		{"xyzzy", General},
		{"", General},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, Classify(tc.text), "text=%q", tc.text)
	}
}

func TestClassifyPriorityOrder(t *testing.T) {
	// Earlier labels win when several keyword sets match.
	require.Equal(t, Urgent, Classify("Bonjour, j'ai un problème urgent avec ma commande"))
	require.Equal(t, Order, Classify("bonjour, ma commande est en retard"))
	require.Equal(t, Product, Classify("salut, le prix svp"))
}

func TestClassifyCaseInsensitive(t *testing.T) {
	require.Equal(t, Greeting, Classify("BONJOUR"))
	require.Equal(t, Order, Classify("SUIVI DE LIVRAISON"))
}

func TestClassifyDeterministic(t *testing.T) {
	for i := 0; i < 10; i++ {
		require.Equal(t, Urgent, Classify("aide moi vite"))
	}
}

func TestRulesTableExhaustive(t *testing.T) {
	// Every keyword in the table must map back to its own label.
	seen := map[Label]bool{}
	for _, r := range Rules() {
		require.False(t, seen[r.Label], "duplicate label %s", r.Label)
		seen[r.Label] = true
		for _, kw := range r.Keywords {
			got := Classify(kw)
			// A keyword may be shadowed only by an earlier rule.
			if got != r.Label {
				require.True(t, earlier(got, r.Label), "keyword %q of %s classified as %s", kw, r.Label, got)
			}
		}
	}
	require.Len(t, seen, 5)
}

func earlier(a, b Label) bool {
	order := []Label{Urgent, Order, Product, Greeting, Thanks}
	ia, ib := -1, -1
	for i, l := range order {
		if l == a {
			ia = i
		}
		if l == b {
			ib = i
		}
	}
	return ia >= 0 && ib >= 0 && ia < ib
}

func TestNoKeywordContainsUppercase(t *testing.T) {
	for _, r := range Rules() {
		for _, kw := range r.Keywords {
			require.Equal(t, strings.ToLower(kw), kw)
		}
	}
}
