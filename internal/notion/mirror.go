// Package notion replicates processed interactions into the team's Notion
// workspace: a WhatsApp hub entry, a command-center action, a dashboard
// metric and an integration-health record. Every call is best effort; a
// failed record never blocks the others nor the reply itself.
package notion

import (
	"context"
	"log"
	"time"

	"github.com/jomei/notionapi"

	"luma-bot/internal/bot"
	"luma-bot/internal/contact"
)

type Databases struct {
	Hub         string
	Command     string
	Dashboard   string
	Integration string
}

type Mirror struct {
	client        *notionapi.Client
	dbs           Databases
	assistantName string
	connector     string
	now           func() time.Time
}

// New builds the mirror. connector names the transport feeding it
// ("Whatsmeow" or "Twilio") for the integration-health record.
func New(apiKey string, dbs Databases, assistantName, connector string) *Mirror {
	return &Mirror{
		client:        notionapi.NewClient(notionapi.Token(apiKey)),
		dbs:           dbs,
		assistantName: assistantName,
		connector:     connector,
		now:           time.Now,
	}
}

func (m *Mirror) Mirror(ctx context.Context, it bot.Interaction) bot.MirrorOutcome {
	var out bot.MirrorOutcome
	out.Hub = m.createHubEntry(ctx, it)
	out.Command = m.logCommandCenter(ctx, it)
	out.Dashboard = m.updateDashboard(ctx, it)
	out.Integration = m.logIntegration(ctx, it)
	if out.Failures() == 0 {
		log.Printf("🎉 Intégration Notion complète réussie pour %s", it.ContactName)
	}
	return out
}

func (m *Mirror) createHubEntry(ctx context.Context, it bot.Interaction) error {
	name := it.ContactName
	if name == "" {
		name = contact.DeriveName(it.ContactID)
	}
	err := m.createPage(ctx, m.dbs.Hub, notionapi.Properties{
		"Nom":               title(name),
		"Contact":           richText(it.ContactID),
		"Dernier message":   richText(it.Text),
		"Statut":            selectOpt("Nouveau"),
		"Langue":            selectOpt(DetectLanguage(it.Text)),
		"Type demande":      selectOpt(ClassifyRequest(it.Text)),
		"Priorité":          selectOpt(Priority(it.Text)),
		"Numéro":            phoneNumber(contact.DeriveName(it.ContactID)),
		"Nombre d'échanges": number(1),
	})
	if err != nil {
		log.Printf("❌ Erreur création entrée WhatsApp Hub: %v", err)
		return err
	}
	log.Printf("✅ Contact créé dans Notion WhatsApp Hub: %s", name)
	return nil
}

func (m *Mirror) logCommandCenter(ctx context.Context, it bot.Interaction) error {
	err := m.createPage(ctx, m.dbs.Command, notionapi.Properties{
		"Action":           title("Réponse automatique WhatsApp"),
		"Canal":            selectOpt("WhatsApp"),
		"Statut":           selectOpt("Succès"),
		"Client":           richText(it.ContactID),
		"IA impliquée":     richText(m.assistantName),
		"Temps traitement": number(float64(it.Elapsed.Milliseconds())),
		"Date":             m.date(),
	})
	if err != nil {
		log.Printf("❌ Erreur log Command Center: %v", err)
		return err
	}
	return nil
}

func (m *Mirror) updateDashboard(ctx context.Context, it bot.Interaction) error {
	err := m.createPage(ctx, m.dbs.Dashboard, notionapi.Properties{
		"Type":     selectOpt("whatsapp_message"),
		"Client":   richText(it.ContactID),
		"Langue":   selectOpt(DetectLanguage(it.Text)),
		"Priorité": selectOpt(Priority(it.Text)),
		"Date":     m.date(),
	})
	if err != nil {
		log.Printf("❌ Erreur mise à jour Dashboard: %v", err)
		return err
	}
	return nil
}

func (m *Mirror) logIntegration(ctx context.Context, it bot.Interaction) error {
	err := m.createPage(ctx, m.dbs.Integration, notionapi.Properties{
		"Nom":                title("WhatsApp → " + m.assistantName + " → Notion (support)"),
		"Statut":             selectOpt("Actif"),
		"Source":             selectOpt("WhatsApp"),
		"Cible":              selectOpt("Notion"),
		"Connecteur":         selectOpt(m.connector),
		"Type":               selectOpt("Unidirectionnelle"),
		"Dernière exécution": m.date(),
		"IA impliquée":       richText(m.assistantName),
	})
	if err != nil {
		log.Printf("❌ Erreur log intégration: %v", err)
		return err
	}
	return nil
}

func (m *Mirror) createPage(ctx context.Context, databaseID string, props notionapi.Properties) error {
	_, err := m.client.Page.Create(ctx, &notionapi.PageCreateRequest{
		Parent: notionapi.Parent{
			Type:       notionapi.ParentTypeDatabaseID,
			DatabaseID: notionapi.DatabaseID(databaseID),
		},
		Properties: props,
	})
	return err
}

func (m *Mirror) date() notionapi.DateProperty {
	d := notionapi.Date(m.now())
	return notionapi.DateProperty{Date: &notionapi.DateObject{Start: &d}}
}

func title(s string) notionapi.TitleProperty {
	return notionapi.TitleProperty{Title: []notionapi.RichText{{Text: &notionapi.Text{Content: s}}}}
}

func richText(s string) notionapi.RichTextProperty {
	return notionapi.RichTextProperty{RichText: []notionapi.RichText{{Text: &notionapi.Text{Content: s}}}}
}

func selectOpt(name string) notionapi.SelectProperty {
	return notionapi.SelectProperty{Select: notionapi.Option{Name: name}}
}

func number(n float64) notionapi.NumberProperty {
	return notionapi.NumberProperty{Number: n}
}

func phoneNumber(s string) notionapi.PhoneNumberProperty {
	return notionapi.PhoneNumberProperty{PhoneNumber: s}
}
