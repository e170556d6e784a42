package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"luma-bot/internal/audit"
	"luma-bot/internal/bot"
	"luma-bot/internal/config"
	"luma-bot/internal/contact"
	"luma-bot/internal/guard"
	"luma-bot/internal/monitor"
	"luma-bot/internal/notion"
	"luma-bot/internal/respond"
	"luma-bot/internal/wa"
)

func main() {
	log.Println("🔥 LUMA BUSINESS PRO - WHATSAPP AUTO-HÉBERGÉ")
	log.Println("💙 Réponses automatiques clients sans API payante !")

	cfg := config.Load()

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
		}, cfg.AssistantName+" Pro", "Whatsmeow")
		log.Println("🔗 Miroir Notion activé")
	}

	client, err := wa.New(context.Background(), wa.Config{
		DBPath:            cfg.WADBPath,
		ReconnectDelay:    cfg.WAReconnectDelay,
		ReconnectOnLogout: cfg.WAReconnectOnLogout,
		SendTimeout:       cfg.WASendTimeout,
		SendsPerMinute:    cfg.WASendsPerMinute,
	})
	if err != nil {
		log.Fatalf("❌ Erreur initialisation session WhatsApp: %v", err)
	}

	svc := bot.New(bot.Config{
		BusinessName:  cfg.BusinessName,
		AutoRespond:   cfg.AutoResponseEnabled,
		ResponseDelay: cfg.ResponseDelay,
	}, gate, contacts, composer, client, mirror, audit.NewLogger(cfg.AuditLogFile))
	client.SetProcessor(svc)

	srv := monitor.New("LUMA WhatsApp (session auto-hébergée)", client, contacts, cfg.CORSOrigins)
	go func() {
		if err := srv.Run(cfg.Addr()); err != nil {
			log.Fatalf("❌ Serveur monitoring: %v", err)
		}
	}()

	log.Println("📱 En attente de connexion WhatsApp...")
	if err := client.Connect(context.Background()); err != nil {
		log.Fatalf("❌ Erreur connexion WhatsApp: %v", err)
	}

	log.Println("🎉 LUMA OPÉRATIONNEL ! Réponses automatiques activées !")

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan
	log.Println("👋 Arrêt LUMA...")
	client.Disconnect()
}
