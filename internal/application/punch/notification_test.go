package punch_test

import (
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/punchlist-api/internal/application/punch"
	"github.com/jhoicas/punchlist-api/internal/domain/entity"
)

func TestComposeAssignmentDraft(t *testing.T) {
	item := &entity.PunchItem{Description: "Outlet cover missing & loose", Location: "Room 101", Trade: entity.TradeElectrical}
	d := punch.ComposeAssignmentDraft(item, "sparky@elec.test")

	assert.Equal(t, "sparky@elec.test", d.To)
	assert.Equal(t, "Punch List Item Assigned: Electrical", d.Subject)
	assert.Contains(t, d.Body, "Trade: Electrical")
	assert.Contains(t, d.Body, "Location: Room 101")
	assert.Contains(t, d.Body, "Description: Outlet cover missing & loose")

	require.True(t, strings.HasPrefix(d.MailtoURL, "mailto:sparky@elec.test?"))
	assert.NotContains(t, d.MailtoURL, "+", "los espacios se codifican como %20")
	q, err := url.ParseQuery(strings.TrimPrefix(d.MailtoURL, "mailto:sparky@elec.test?"))
	require.NoError(t, err)
	assert.Equal(t, d.Subject, q.Get("subject"))
	assert.Equal(t, d.Body, q.Get("body"))
}

func TestComposeAssignmentDraft_SinUbicacion(t *testing.T) {
	d := punch.ComposeAssignmentDraft(&entity.PunchItem{Name: "Paint touch-up", Trade: entity.TradePainting}, "p@x.test")
	assert.Contains(t, d.Body, "Item: Paint touch-up")
	assert.Contains(t, d.Body, "Location: -")
	assert.NotContains(t, d.Body, "Description:")
}
