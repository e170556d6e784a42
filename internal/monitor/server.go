// Package monitor exposes the small HTTP surface used by the operator:
// service status, contact stats and a manual-send escape hatch.
package monitor

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"luma-bot/internal/bot"
	"luma-bot/internal/contact"
)

type Server struct {
	serviceName string
	sender      bot.Sender
	contacts    *contact.Registry
	engine      *gin.Engine
}

func New(serviceName string, sender bot.Sender, contacts *contact.Registry, corsOrigins []string) *Server {
	gin.SetMode(gin.ReleaseMode)
	r := gin.Default()
	r.Use(cors.New(corsConfig(corsOrigins)))

	s := &Server{
		serviceName: serviceName,
		sender:      sender,
		contacts:    contacts,
		engine:      r,
	}
	s.routes()
	return s
}

// Engine exposes the router so a transport can mount its webhook on the
// same listener.
func (s *Server) Engine() *gin.Engine { return s.engine }

func (s *Server) Run(addr string) error {
	log.Printf("📊 Monitoring disponible sur http://%s/status", addr)
	return s.engine.Run(addr)
}

func (s *Server) routes() {
	s.engine.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"service": s.serviceName,
			"status":  "running",
			"webhook": "/webhook/twilio-whatsapp",
			"routes":  []string{"/status", "/stats", "/send"},
		})
	})

	s.engine.GET("/status", func(c *gin.Context) {
		status := "connecting"
		if s.sender.Ready() {
			status = "connected"
		}
		c.JSON(http.StatusOK, gin.H{
			"service":   s.serviceName,
			"status":    status,
			"clients":   s.contacts.Count(),
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	})

	s.engine.GET("/stats", func(c *gin.Context) {
		stats := s.contacts.Stats()
		c.JSON(http.StatusOK, gin.H{
			"total_clients":        stats.TotalContacts,
			"interactions_total":   stats.TotalInteractions,
			"active_conversations": stats.ActiveLast24h,
		})
	})

	s.engine.POST("/send", s.handleSend)
}

type sendPayload struct {
	Phone   string `form:"phone" json:"phone"`
	Message string `form:"message" json:"message"`
}

// handleSend dispatches a manual message. A 200 means dispatched, not
// delivered.
func (s *Server) handleSend(c *gin.Context) {
	var p sendPayload
	_ = c.ShouldBind(&p)
	if p.Phone == "" || p.Message == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "phone et message requis"})
		return
	}

	if err := s.sender.Send(c.Request.Context(), p.Phone, p.Message); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Message envoyé"})
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		cfg.AllowAllOrigins = true
		return cfg
	}
	cfg.AllowOrigins = origins
	return cfg
}
