package twiliowa

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"luma-bot/internal/bot"
)

// Webhook receives Twilio WhatsApp callbacks and runs them through the
// pipeline. Processing is synchronous with bounded per-call timeouts so
// the reply text can be returned in the acknowledgement.
type Webhook struct {
	svc *bot.Service
}

func NewWebhook(svc *bot.Service) *Webhook {
	return &Webhook{svc: svc}
}

func (w *Webhook) Register(r *gin.Engine) {
	r.POST("/webhook/twilio-whatsapp", w.handle)
}

type inboundPayload struct {
	From        string `form:"From" json:"From"`
	Body        string `form:"Body" json:"Body"`
	ProfileName string `form:"ProfileName" json:"ProfileName"`
}

func (w *Webhook) handle(c *gin.Context) {
	var p inboundPayload
	// Twilio posts form-encoded fields; ShouldBind also accepts JSON for
	// manual tests.
	_ = c.ShouldBind(&p)
	if p.From == "" || p.Body == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données manquantes"})
		return
	}

	log.Printf("📱 Message WhatsApp reçu de %s", p.From)

	reply, err := w.svc.Process(c.Request.Context(), bot.Inbound{
		From:        p.From,
		Text:        p.Body,
		ContactName: p.ProfileName,
		Timestamp:   time.Now(),
		Source:      "twilio",
	})
	switch {
	case errors.Is(err, bot.ErrNotAdmitted):
		c.JSON(http.StatusOK, gin.H{"status": "Ignored", "reason": "Anti-spam"})
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusOK, gin.H{
			"status":   "OK",
			"message":  "Message traité avec succès",
			"response": reply,
		})
	}
}
