package respond

// Canned replies, keyed by situation. {name} and {time} are substituted at
// composition time; unknown placeholders stay literal.
const (
	tplWelcome    = "welcome_new_client"
	tplUrgent     = "urgent_support"
	tplOrder      = "order_inquiry"
	tplProduct    = "product_question"
	tplAfterHours = "after_hours"
	tplGeneral    = "general_response"
)

var templates = map[string]string{
	tplWelcome: "Bonjour {name} ! 👋\nMerci de contacter Harley Vape !\n\nJe suis LUMA, l'assistante digitale d'Anne-Sophie. Comment puis-je vous aider aujourd'hui ? 😊\n\n🛒 Commandes\n📦 Suivi livraison\n❓ Questions produits\n\nRépondez simplement !",

	tplUrgent: "🚨 URGENT - Pris en charge !\n\nBonjour {name}, je comprends l'urgence de votre situation.\n\nJe transmets immédiatement à Anne-Sophie qui vous recontacte sous 30 minutes maximum.\n\nVotre demande urgente est notre priorité absolue ! 💙",

	tplOrder: "📦 Commande en cours !\n\nBonjour {name}, je vérifie votre commande immédiatement.\n\nVotre demande est prise en compte et notre équipe vous recontacte très rapidement avec toutes les infos ! 😊\n\nAutre chose pour vous aider ?",

	tplProduct: "🛒 Questions produits !\n\nSalut {name} ! Excellente question sur nos produits Harley Vape.\n\nNotre équipe spécialisée analyse votre demande et vous répond avec tous les détails dans les plus brefs délais !\n\nVoulez-vous que je vous mette en contact direct avec Anne-Sophie ? 📞",

	tplAfterHours: "🌙 Harley Vape - Hors horaires\n\nBonsoir {name} !\n\nIl est {time} et notre équipe est en repos bien mérité 😴\n\nVotre message est enregistré et nous vous répondons dès demain matin (9h-18h).\n\nBonne soirée ! 🌟",

	tplGeneral: "Salut {name} ! 😊\n\nMerci pour votre message ! Je suis LUMA, l'assistante d'Anne-Sophie pour Harley Vape.\n\nComment puis-je vous aider ?\n\n🛒 Commandes et produits\n📞 Contact direct\n❓ Questions diverses\n\nJe suis là pour vous ! 💙",
}
