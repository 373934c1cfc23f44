package punch

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/jhoicas/punchlist-api/internal/domain/entity"
)

// MailDraft borrador de correo para el cliente de correo del usuario.
// La entrega no se confirma: el borrador se devuelve siempre y el envío SMTP es opcional.
type MailDraft struct {
	To        string
	Subject   string
	Body      string
	MailtoURL string
}

// ComposeAssignmentDraft arma la notificación de asignación de un ítem.
func ComposeAssignmentDraft(item *entity.PunchItem, recipient string) MailDraft {
	subject := "Punch List Item Assigned: " + item.Trade

	var b strings.Builder
	b.WriteString("You have been assigned a punch list item.\n\n")
	if item.Name != "" {
		fmt.Fprintf(&b, "Item: %s\n", item.Name)
	}
	fmt.Fprintf(&b, "Trade: %s\n", item.Trade)
	location := item.Location
	if location == "" {
		location = "-"
	}
	fmt.Fprintf(&b, "Location: %s\n", location)
	if item.Description != "" {
		fmt.Fprintf(&b, "Description: %s\n", item.Description)
	}
	body := b.String()

	return MailDraft{
		To:        recipient,
		Subject:   subject,
		Body:      body,
		MailtoURL: mailtoURL(recipient, subject, body),
	}
}

func mailtoURL(to, subject, body string) string {
	return "mailto:" + to + "?subject=" + escape(subject) + "&body=" + escape(body)
}

// escape codifica como QueryEscape pero con %20 para los espacios (los clientes de correo no interpretan '+').
func escape(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
