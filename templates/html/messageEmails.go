package templates

import (
	"fmt"
	"html"
	"strings"
)

// ServiceRequestEmail is the notice a lawyer gets when a client requests one of their services
type ServiceRequestEmail struct {
	LawyerName   string
	ServiceTitle string
	CaseDetails  string
	ActionURL    string
}

// Subject returns the e-mail subject line
func (e ServiceRequestEmail) Subject() string {
	return fmt.Sprintf("New service request: %s", e.ServiceTitle)
}

// HTML renders the branded body
func (e ServiceRequestEmail) HTML() string {
	body := fmt.Sprintf(`<p>Hi %s,</p>
      <p>A client has requested <strong>%s</strong>. Their case details:</p>
      <p class="quote">%s</p>
      <p>Reply in the conversation to accept or ask for more information.</p>`,
		html.EscapeString(greetingName(e.LawyerName)),
		html.EscapeString(e.ServiceTitle),
		textToHTML(e.CaseDetails))
	return renderLayout(e.Subject(), body, e.ActionURL)
}

// Text renders the plain text alternative
func (e ServiceRequestEmail) Text() string {
	return fmt.Sprintf("Hi %s,\n\nA client has requested %s.\n\nCase details:\n%s\n\n%s",
		greetingName(e.LawyerName), e.ServiceTitle, e.CaseDetails, e.ActionURL)
}

// UnreadDigestEmail summarises the messages a user has not read yet
type UnreadDigestEmail struct {
	Name        string
	UnreadCount int
	SenderCount int
	Latest      string
	ActionURL   string
}

// Subject returns the e-mail subject line
func (e UnreadDigestEmail) Subject() string {
	if e.UnreadCount == 1 {
		return "You have 1 unread message"
	}
	return fmt.Sprintf("You have %d unread messages", e.UnreadCount)
}

// HTML renders the branded body
func (e UnreadDigestEmail) HTML() string {
	body := fmt.Sprintf(`<p>Hi %s,</p>
      <p>%s waiting for you from %s.</p>
      <p class="quote">%s</p>`,
		html.EscapeString(greetingName(e.Name)),
		html.EscapeString(countPhrase(e.UnreadCount, "message is", "messages are")),
		html.EscapeString(countPhrase(e.SenderCount, "contact", "contacts")),
		textToHTML(preview(e.Latest)))
	return renderLayout(e.Subject(), body, e.ActionURL)
}

// Text renders the plain text alternative
func (e UnreadDigestEmail) Text() string {
	return fmt.Sprintf("Hi %s,\n\n%s waiting for you from %s.\n\n\"%s\"\n\n%s",
		greetingName(e.Name),
		countPhrase(e.UnreadCount, "message is", "messages are"),
		countPhrase(e.SenderCount, "contact", "contacts"),
		preview(e.Latest), e.ActionURL)
}

const previewLength = 140

func preview(s string) string {
	r := []rune(strings.TrimSpace(s))
	if len(r) <= previewLength {
		return string(r)
	}
	return string(r[:previewLength]) + "…"
}

func greetingName(name string) string {
	if name == "" {
		return "there"
	}
	return name
}

func countPhrase(n int, one, many string) string {
	if n == 1 {
		return "1 " + one
	}
	return fmt.Sprintf("%d %s", n, many)
}
