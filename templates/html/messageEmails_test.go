package templates

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderGenericEmailEscapes(t *testing.T) {
	out := RenderGenericEmail("Hi <b>", "line one\n<script>")
	assert.Contains(t, out, "Hi &lt;b&gt;")
	assert.Contains(t, out, "line one<br>&lt;script&gt;")
	assert.NotContains(t, out, "Open conversation")
}

func TestServiceRequestEmail(t *testing.T) {
	e := ServiceRequestEmail{
		LawyerName:   "Grace",
		ServiceTitle: "Tenancy review",
		CaseDetails:  "My landlord <kept> the deposit",
		ActionURL:    "https://app.example.com/messages",
	}

	assert.Equal(t, "New service request: Tenancy review", e.Subject())
	assert.Contains(t, e.HTML(), "My landlord &lt;kept&gt; the deposit")
	assert.Contains(t, e.HTML(), `href="https://app.example.com/messages"`)
	assert.Contains(t, e.Text(), "Hi Grace,")
}

func TestUnreadDigestEmail(t *testing.T) {
	e := UnreadDigestEmail{UnreadCount: 1, SenderCount: 1, Latest: strings.Repeat("a", 200)}

	assert.Equal(t, "You have 1 unread message", e.Subject())
	assert.Contains(t, e.Text(), "Hi there,")
	assert.Contains(t, e.Text(), "1 message is waiting for you from 1 contact.")
	assert.Contains(t, e.Text(), strings.Repeat("a", previewLength)+"…")

	e.UnreadCount = 4
	e.SenderCount = 2
	assert.Equal(t, "You have 4 unread messages", e.Subject())
	assert.Contains(t, e.HTML(), "4 messages are waiting for you from 2 contacts.")
}
