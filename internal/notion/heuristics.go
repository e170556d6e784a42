package notion

import "regexp"

// Quick per-message heuristics feeding the workspace records. Word lists
// mirror what the support team tags by hand.

var (
	frenchRe  = regexp.MustCompile(`(?i)\b(bonjour|salut|merci|oui|non|comment|quoi|pourquoi|quand|où|qui)\b`)
	englishRe = regexp.MustCompile(`(?i)\b(hello|hi|thanks|yes|no|how|what|why|when|where|who)\b`)
	spanishRe = regexp.MustCompile(`(?i)\b(hola|gracias|si|no|como|que|porque|cuando|donde|quien)\b`)

	urgentRe = regexp.MustCompile(`(?i)urgent|emergency|problème|help|sos|immédiat`)
	highRe   = regexp.MustCompile(`(?i)important|rapide|vite|dépêche`)

	productRe = regexp.MustCompile(`(?i)geekbar|produit|vape`)
	hoursRe   = regexp.MustCompile(`(?i)ouvert|horaire|fermé`)
	supportRe = regexp.MustCompile(`(?i)problème|bug|sav`)
	orderRe   = regexp.MustCompile(`(?i)commande|livraison|suivi`)
	pricingRe = regexp.MustCompile(`(?i)prix|tarif|coût`)
)

// DetectLanguage guesses the message language for the hub record; French
// is the default for this shop.
func DetectLanguage(text string) string {
	switch {
	case frenchRe.MatchString(text):
		return "Français"
	case spanishRe.MatchString(text):
		return "Espagnol"
	case englishRe.MatchString(text):
		return "Anglais"
	default:
		return "Français"
	}
}

// ClassifyRequest buckets the message for the hub record's request-type
// column.
func ClassifyRequest(text string) string {
	switch {
	case productRe.MatchString(text):
		return "Info produit"
	case hoursRe.MatchString(text):
		return "Horaires"
	case supportRe.MatchString(text):
		return "SAV"
	case orderRe.MatchString(text):
		return "Commande"
	case pricingRe.MatchString(text):
		return "Tarification"
	default:
		return "Info générale"
	}
}

// Priority flags messages needing a human quickly.
func Priority(text string) string {
	switch {
	case urgentRe.MatchString(text):
		return "Urgent"
	case highRe.MatchString(text):
		return "Élevée"
	default:
		return "Normal"
	}
}
