// Package wa is the self-hosted transport: a long-lived multi-device
// WhatsApp session owned by whatsmeow, with credential state persisted in
// a local sqlite store.
package wa

import (
	"context"
	"errors"
	"log"
	"os"
	"strings"
	"sync/atomic"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/mdp/qrterminal/v3"
	"go.mau.fi/whatsmeow"
	waProto "go.mau.fi/whatsmeow/binary/proto"
	"go.mau.fi/whatsmeow/store/sqlstore"
	"go.mau.fi/whatsmeow/types"
	"go.mau.fi/whatsmeow/types/events"
	waLog "go.mau.fi/whatsmeow/util/log"
	"golang.org/x/time/rate"

	"luma-bot/internal/bot"
)

// ErrNotReady is returned for sends attempted before the session is
// authenticated and connected. Such sends are dropped, not queued.
var ErrNotReady = errors.New("whatsapp session not ready")

type Config struct {
	DBPath            string
	ReconnectDelay    time.Duration
	ReconnectOnLogout bool
	SendTimeout       time.Duration
	SendsPerMinute    int
}

// Processor runs the reply pipeline for one inbound message.
type Processor interface {
	Process(ctx context.Context, in bot.Inbound) (string, error)
}

type Client struct {
	wm      *whatsmeow.Client
	cfg     Config
	ready   atomic.Bool
	limiter *rate.Limiter
	proc    Processor
}

func New(ctx context.Context, cfg Config) (*Client, error) {
	if cfg.ReconnectDelay <= 0 {
		cfg.ReconnectDelay = 3 * time.Second
	}
	if cfg.SendTimeout <= 0 {
		cfg.SendTimeout = 30 * time.Second
	}
	if cfg.SendsPerMinute <= 0 {
		cfg.SendsPerMinute = 20
	}

	dbLog := waLog.Stdout("Database", "ERROR", true)
	container, err := sqlstore.New(ctx, "sqlite3", "file:"+cfg.DBPath+"?_foreign_keys=on", dbLog)
	if err != nil {
		return nil, err
	}
	deviceStore, err := container.GetFirstDevice(ctx)
	if err != nil {
		return nil, err
	}

	wm := whatsmeow.NewClient(deviceStore, waLog.Stdout("Client", "ERROR", true))
	// Reconnection is handled here so the terminal-logout boundary stays
	// configurable.
	wm.EnableAutoReconnect = false

	c := &Client{
		wm:      wm,
		cfg:     cfg,
		limiter: rate.NewLimiter(rate.Limit(float64(cfg.SendsPerMinute)/60.0), 1),
	}
	wm.AddEventHandler(c.handleEvent)
	return c, nil
}

// SetProcessor attaches the reply pipeline. Messages arriving before this
// are dropped.
func (c *Client) SetProcessor(p Processor) { c.proc = p }

// Connect opens the session, pairing via a terminal QR code when no
// stored credentials exist.
func (c *Client) Connect(ctx context.Context) error {
	if c.wm.Store.ID == nil {
		qrChan, err := c.wm.GetQRChannel(ctx)
		if err != nil {
			return err
		}
		if err := c.wm.Connect(); err != nil {
			return err
		}
		for evt := range qrChan {
			switch evt.Event {
			case "code":
				log.Println("📱 Nouveau QR Code généré ! Scannez avec WhatsApp")
				qrterminal.GenerateHalfBlock(evt.Code, qrterminal.L, os.Stdout)
			default:
				log.Printf("🔑 Appairage: %s", evt.Event)
			}
		}
		return nil
	}
	return c.wm.Connect()
}

func (c *Client) Disconnect() {
	c.ready.Store(false)
	c.wm.Disconnect()
}

func (c *Client) Ready() bool { return c.ready.Load() }

// Send pushes one text message. Sends before readiness are dropped.
func (c *Client) Send(ctx context.Context, to, text string) error {
	if !c.ready.Load() {
		log.Printf("⚠️  WhatsApp pas encore prêt, message pour %s abandonné", to)
		return ErrNotReady
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	jid, err := parseJID(to)
	if err != nil {
		return err
	}

	sendCtx, cancel := context.WithTimeout(ctx, c.cfg.SendTimeout)
	defer cancel()
	_, err = c.wm.SendMessage(sendCtx, jid, &waProto.Message{Conversation: &text})
	return err
}

func (c *Client) handleEvent(evt interface{}) {
	switch v := evt.(type) {
	case *events.Connected:
		c.ready.Store(true)
		log.Println("✅ WhatsApp connecté avec succès !")
	case *events.PairSuccess:
		log.Printf("🔗 Appairage réussi: %s", v.ID)
	case *events.LoggedOut:
		c.ready.Store(false)
		if c.cfg.ReconnectOnLogout {
			log.Println("🔌 Session déconnectée (logout), reconnexion forcée par configuration")
			go c.reconnect()
			return
		}
		log.Println("🛑 Session WhatsApp déconnectée définitivement (logout), pas de reconnexion")
	case *events.Disconnected:
		c.ready.Store(false)
		log.Printf("🔌 Connexion fermée, reconnexion dans %s", c.cfg.ReconnectDelay)
		go c.reconnect()
	case *events.Message:
		c.handleMessage(v)
	}
}

func (c *Client) reconnect() {
	time.Sleep(c.cfg.ReconnectDelay)
	if c.wm.IsConnected() {
		return
	}
	if err := c.wm.Connect(); err != nil {
		log.Printf("❌ Échec reconnexion: %v", err)
	}
}

func (c *Client) handleMessage(v *events.Message) {
	if v.Info.IsFromMe || v.Info.IsGroup || v.Info.Chat.User == "status" {
		return
	}

	text := extractText(v)
	if text == "" {
		log.Printf("📎 Type de message non supporté de %s, ignoré", v.Info.Chat.User)
		return
	}

	if c.proc == nil {
		return
	}
	in := bot.Inbound{
		From:        v.Info.Chat.ToNonAD().String(),
		Text:        text,
		ContactName: v.Info.PushName,
		MessageID:   string(v.Info.ID),
		Timestamp:   v.Info.Timestamp,
		Source:      "whatsmeow",
	}
	go func() {
		if _, err := c.proc.Process(context.Background(), in); err != nil && !errors.Is(err, bot.ErrNotAdmitted) {
			log.Printf("❌ Erreur traitement message de %s: %v", in.From, err)
		}
	}()
}

func extractText(v *events.Message) string {
	switch {
	case v.Message.GetConversation() != "":
		return strings.TrimSpace(v.Message.GetConversation())
	case v.Message.GetExtendedTextMessage() != nil:
		return strings.TrimSpace(v.Message.GetExtendedTextMessage().GetText())
	case v.Message.GetImageMessage() != nil:
		return strings.TrimSpace(v.Message.GetImageMessage().GetCaption())
	default:
		return ""
	}
}

func parseJID(to string) (types.JID, error) {
	if strings.ContainsRune(to, '@') {
		return types.ParseJID(to)
	}
	return types.NewJID(strings.TrimPrefix(to, "+"), types.DefaultUserServer), nil
}
