package main

import (
	"log"
	"time"

	"luma-bot/internal/audit"
	"luma-bot/internal/bot"
	"luma-bot/internal/config"
	"luma-bot/internal/contact"
	"luma-bot/internal/guard"
	"luma-bot/internal/monitor"
	"luma-bot/internal/notion"
	"luma-bot/internal/respond"
	"luma-bot/internal/twiliowa"
)

func main() {
	log.Println("🔥 LUMA BUSINESS PRO - TWILIO WHATSAPP")
	log.Println("💙 Employée digitale autonome pour Harley Vape")

	cfg := config.Load()
	if cfg.TwilioAccountSID == "" || cfg.TwilioAuthToken == "" {
		log.Fatal("❌ TWILIO_ACCOUNT_SID et TWILIO_AUTH_TOKEN sont requis")
	}
	if cfg.TwilioWhatsAppFrom == "" {
		log.Fatal("❌ TWILIO_WHATSAPP_FROM est requis")
	}

	gate := guard.New(guard.Config{
		Cooldown:       cfg.ResponseCooldown,
		Signatures:     []string{"L'équipe " + cfg.BusinessName, "🧡", cfg.AssistantName},
		GreetingPrefix: "Salut !",
	})
	gate.StartPurging(time.Minute)
	defer gate.Stop()

	contacts := contact.NewRegistry()

	var completer respond.Completer
	if cfg.OpenRouterAPIKey != "" {
		or, err := respond.NewOpenRouterCompleter(
			cfg.OpenRouterBaseURL, cfg.OpenRouterAPIKey, cfg.OpenRouterModel,
			cfg.AssistantName, cfg.BusinessName)
		if err != nil {
			log.Fatalf("❌ Erreur initialisation OpenRouter: %v", err)
		}
		completer = or
		log.Println("🧠 Mode augmenté activé (OpenRouter)")
	} else {
		log.Println("📋 Mode templates uniquement (pas de clé OpenRouter)")
	}
	composer := respond.NewComposer(cfg.BusinessHoursStart, cfg.BusinessHoursEnd, completer)

	var mirror bot.Mirror
	if cfg.NotionAPIKey != "" {
		mirror = notion.New(cfg.NotionAPIKey, notion.Databases{
			Hub:         cfg.NotionHubDB,
			Command:     cfg.NotionCommandDB,
			Dashboard:   cfg.NotionDashboardDB,
			Integration: cfg.NotionIntegrationDB,
		}, cfg.AssistantName+" Pro", "Twilio")
		log.Println("🔗 Miroir Notion activé")
	}

	sender := twiliowa.NewSender(cfg.TwilioAccountSID, cfg.TwilioAuthToken, cfg.TwilioWhatsAppFrom)

	svc := bot.New(bot.Config{
		BusinessName:  cfg.BusinessName,
		AutoRespond:   cfg.AutoResponseEnabled,
		ResponseDelay: cfg.ResponseDelay,
	}, gate, contacts, composer, sender, mirror, audit.NewLogger(cfg.AuditLogFile))

	srv := monitor.New("LUMA Twilio WhatsApp", sender, contacts, cfg.CORSOrigins)
	twiliowa.NewWebhook(svc).Register(srv.Engine())

	log.Println("📱 Webhook WhatsApp: /webhook/twilio-whatsapp")
	log.Println("🛡️  Système anti-spam WhatsApp activé !")
	if err := srv.Run(cfg.Addr()); err != nil {
		log.Fatalf("❌ Erreur serveur: %v", err)
	}
}
