package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds everything the service reads from the environment.
type Config struct {
	Host string
	Port string

	BusinessName       string
	AssistantName      string
	BusinessHoursStart int
	BusinessHoursEnd   int

	AutoResponseEnabled bool
	ResponseDelay       time.Duration
	ResponseCooldown    time.Duration

	OpenRouterAPIKey  string
	OpenRouterModel   string
	OpenRouterBaseURL string

	NotionAPIKey        string
	NotionHubDB         string
	NotionCommandDB     string
	NotionDashboardDB   string
	NotionIntegrationDB string

	TwilioAccountSID   string
	TwilioAuthToken    string
	TwilioWhatsAppFrom string

	WADBPath            string
	WAReconnectDelay    time.Duration
	WAReconnectOnLogout bool
	WASendTimeout       time.Duration
	WASendsPerMinute    int

	AuditLogFile string
	CORSOrigins  []string
}

// Load reads .env (if present) and the process environment.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("ℹ️  Pas de fichier .env, utilisation des variables d'environnement")
	}

	cfg := &Config{
		Host: getEnv("HOST", "0.0.0.0"),
		Port: getEnv("PORT", "3001"),

		BusinessName:       getEnv("BUSINESS_NAME", "Harley Vape"),
		AssistantName:      getEnv("ASSISTANT_NAME", "LUMA"),
		BusinessHoursStart: getEnvInt("BUSINESS_HOURS_START", 9),
		BusinessHoursEnd:   getEnvInt("BUSINESS_HOURS_END", 18),

		AutoResponseEnabled: getEnvBool("AUTO_RESPONSE_ENABLED", true),
		ResponseDelay:       getEnvDuration("RESPONSE_DELAY", 2*time.Second),
		ResponseCooldown:    getEnvDuration("RESPONSE_COOLDOWN", 30*time.Second),

		OpenRouterAPIKey:  getEnv("OPENROUTER_API_KEY", ""),
		OpenRouterModel:   getEnv("OPENROUTER_MODEL", "openai/gpt-4o-mini"),
		OpenRouterBaseURL: getEnv("OPENROUTER_BASE_URL", "https://openrouter.ai/api/v1"),

		NotionAPIKey:        getEnv("NOTION_API_KEY", ""),
		NotionHubDB:         getEnv("NOTION_DB_WHATSAPP_HUB", ""),
		NotionCommandDB:     getEnv("NOTION_DB_COMMAND_CENTER", ""),
		NotionDashboardDB:   getEnv("NOTION_DB_DASHBOARD", ""),
		NotionIntegrationDB: getEnv("NOTION_DB_INTEGRATIONS", ""),

		TwilioAccountSID:   getEnv("TWILIO_ACCOUNT_SID", ""),
		TwilioAuthToken:    getEnv("TWILIO_AUTH_TOKEN", ""),
		TwilioWhatsAppFrom: getEnv("TWILIO_WHATSAPP_FROM", ""),

		WADBPath:            getEnv("WA_DB_PATH", "luma.db"),
		WAReconnectDelay:    getEnvDuration("WA_RECONNECT_DELAY", 3*time.Second),
		WAReconnectOnLogout: getEnvBool("WA_RECONNECT_ON_LOGOUT", false),
		WASendTimeout:       getEnvDuration("WA_SEND_TIMEOUT", 30*time.Second),
		WASendsPerMinute:    getEnvInt("WA_SENDS_PER_MINUTE", 20),

		AuditLogFile: getEnv("AUDIT_LOG_FILE", "luma_interactions.log"),
		CORSOrigins:  splitCSV(getEnv("CORS_ORIGINS", "*")),
	}

	log.Printf("⚙️  Configuration chargée - Port: %s, Business: %s, Horaires: %dh-%dh",
		cfg.Port, cfg.BusinessName, cfg.BusinessHoursStart, cfg.BusinessHoursEnd)
	return cfg
}

func (c *Config) Addr() string {
	return c.Host + ":" + c.Port
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		log.Printf("⚠️  %s invalide (%q), valeur par défaut %d", key, raw, defaultValue)
		return defaultValue
	}
	return n
}

func getEnvBool(key string, defaultValue bool) bool {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		log.Printf("⚠️  %s invalide (%q), valeur par défaut %v", key, raw, defaultValue)
		return defaultValue
	}
	return b
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		log.Printf("⚠️  %s invalide (%q), valeur par défaut %s", key, raw, defaultValue)
		return defaultValue
	}
	return d
}

func splitCSV(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
