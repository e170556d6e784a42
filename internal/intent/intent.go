// Package intent maps free-text client messages to a small fixed taxonomy.
package intent

import "strings"

type Label string

const (
	Urgent   Label = "urgent"
	Order    Label = "order"
	Product  Label = "product"
	Greeting Label = "greeting"
	Thanks   Label = "thanks"
	General  Label = "general"
)

type Rule struct {
	Label    Label
	Keywords []string
}

// Evaluated top to bottom, first match wins.
var rules = []Rule{
	{Urgent, []string{"urgent", "problème", "help", "aide", "bug", "erreur"}},
	{Order, []string{"commande", "order", "suivi", "tracking", "livraison"}},
	{Product, []string{"produit", "product", "prix", "price", "stock"}},
	{Greeting, []string{"bonjour", "hello", "salut", "hi", "bonsoir"}},
	{Thanks, []string{"merci", "thank", "parfait", "super", "génial"}},
}

// Classify returns the first label whose keyword list has a substring match
// in text (case-insensitive), or General.
func Classify(text string) Label {
	lower := strings.ToLower(text)
	for _, r := range rules {
		for _, kw := range r.Keywords {
			if strings.Contains(lower, kw) {
				return r.Label
			}
		}
	}
	return General
}

// Rules returns a copy of the classification table, in priority order.
func Rules() []Rule {
	out := make([]Rule, len(rules))
	copy(out, rules)
	return out
}
