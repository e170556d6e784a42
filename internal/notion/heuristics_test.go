package notion

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDetectLanguage(t *testing.T) {
	cases := []struct{ text, want string }{
		{"Bonjour, comment ça va ?", "Français"},
		{"hello, where is my parcel", "Anglais"},
		{"hola, gracias", "Espagnol"},
		{"zzzz", "Français"}, // default
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, DetectLanguage(tc.text), "text=%q", tc.text)
	}
}

func TestClassifyRequest(t *testing.T) {
	cases := []struct{ text, want string }{
		{"tu as des geekbar ?", "Info produit"},
		{"vous êtes ouvert demain ?", "Horaires"},
		{"j'ai un bug avec le site", "SAV"},
		{"où est ma commande", "Commande"},
		{"quel est le tarif", "Tarification"},
		{"coucou", "Info générale"},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, ClassifyRequest(tc.text), "text=%q", tc.text)
	}
}

func TestPriority(t *testing.T) {
	require.Equal(t, "Urgent", Priority("c'est URGENT"))
	require.Equal(t, "Urgent", Priority("gros problème"))
	require.Equal(t, "Élevée", Priority("c'est important, réponds vite"))
	require.Equal(t, "Normal", Priority("petite question"))
}
