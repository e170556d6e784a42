package twiliowa

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"luma-bot/internal/bot"
	"luma-bot/internal/contact"
	"luma-bot/internal/guard"
	"luma-bot/internal/respond"
)

type stubSender struct {
	mu   sync.Mutex
	sent int
}

func (s *stubSender) Send(context.Context, string, string) error {
	s.mu.Lock()
	s.sent++
	s.mu.Unlock()
	return nil
}

func (s *stubSender) Ready() bool { return true }

func newWebhookRouter(t *testing.T) (*gin.Engine, *stubSender) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	gate := guard.New(guard.Config{
		Cooldown:       30 * time.Second,
		Signatures:     []string{"L'équipe Harley Vape", "🧡", "LUMA"},
		GreetingPrefix: "Salut !",
	})
	at := time.Date(2024, 5, 2, 11, 0, 0, 0, time.UTC)
	composer := respond.NewComposer(9, 18, nil).WithClock(func() time.Time { return at })

	sender := &stubSender{}
	svc := bot.New(bot.Config{
		BusinessName: "Harley Vape",
		AutoRespond:  true,
	}, gate, contact.NewRegistry(), composer, sender, nil, nil)

	r := gin.New()
	NewWebhook(svc).Register(r)
	return r, sender
}

func postForm(r *gin.Engine, fields url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/webhook/twilio-whatsapp",
		strings.NewReader(fields.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestWebhookMissingFields(t *testing.T) {
	r, _ := newWebhookRouter(t)

	rec := postForm(r, url.Values{"From": {"whatsapp:+33612345678"}})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = postForm(r, url.Values{"Body": {"bonjour"}})
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestWebhookProcessesMessage(t *testing.T) {
	r, sender := newWebhookRouter(t)

	rec := postForm(r, url.Values{
		"From":        {"whatsapp:+33612345678"},
		"Body":        {"Bonjour, j'ai un problème urgent avec ma commande"},
		"ProfileName": {"Thomas"},
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, "OK", resp["status"])
	require.Contains(t, resp["response"], "URGENT - Pris en charge")
	require.Contains(t, resp["response"], "Thomas")
	require.Equal(t, 1, sender.sent)
}

func TestWebhookAntiSpamIgnored(t *testing.T) {
	r, sender := newWebhookRouter(t)

	fields := url.Values{
		"From": {"whatsapp:+33612345678"},
		"Body": {"Bonjour, j'ai un problème urgent avec ma commande"},
	}
	require.Equal(t, http.StatusOK, postForm(r, fields).Code)

	// Second message within the cooldown window.
	rec := postForm(r, fields)
	require.Equal(t, http.StatusOK, rec.Code)
	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, "Ignored", resp["status"])
	require.Equal(t, "Anti-spam", resp["reason"])
	require.Equal(t, 1, sender.sent)
}

func TestWebhookAcceptsJSON(t *testing.T) {
	r, _ := newWebhookRouter(t)

	body := `{"From":"whatsapp:+33699999999","Body":"où est ma commande ?","ProfileName":"Léa"}`
	req := httptest.NewRequest(http.MethodPost, "/webhook/twilio-whatsapp", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Contains(t, resp["response"], "Commande en cours")
}

func TestWhatsappAddr(t *testing.T) {
	require.Equal(t, "whatsapp:+336", whatsappAddr("+336"))
	require.Equal(t, "whatsapp:+336", whatsappAddr("whatsapp:+336"))
}
