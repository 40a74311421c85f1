package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLeadDefaults(t *testing.T) {
	lead, err := NewLead("  Panadería Central ")
	require.NoError(t, err)

	assert.Equal(t, "Panadería Central", lead.BusinessName)
	assert.Equal(t, DefaultExtractionSource, lead.ExtractionSource)
	assert.Equal(t, ResponseNone, lead.ResponseStatus)
	assert.False(t, lead.ExtractionDate.IsZero())
	assert.Nil(t, lead.Email)
	assert.False(t, lead.EmailSent)
}

func TestNewLeadRequiresBusinessName(t *testing.T) {
	_, err := NewLead("   ")
	assert.ErrorIs(t, err, ErrBusinessNameRequired)
}

func TestParseChannel(t *testing.T) {
	ch, err := ParseChannel(" WhatsApp ")
	require.NoError(t, err)
	assert.Equal(t, ChannelWhatsApp, ch)
	assert.True(t, ch.HasTimestamp())
	assert.False(t, ChannelInstagram.HasTimestamp())

	for _, known := range Channels {
		got, err := ParseChannel(string(known))
		require.NoError(t, err)
		assert.Equal(t, known, got)
	}

	_, err = ParseChannel("sms")
	assert.ErrorIs(t, err, ErrInvalidChannel)
}

func TestIsValidLeadStatus(t *testing.T) {
	for _, s := range []string{"", LeadStatusContacted, LeadStatusPending, LeadStatusNoEmail} {
		assert.True(t, IsValidLeadStatus(s), s)
	}
	assert.False(t, IsValidLeadStatus("archived"))
}

func TestIsValidResponseStatus(t *testing.T) {
	assert.True(t, IsValidResponseStatus(ResponseInterested))
	assert.False(t, IsValidResponseStatus("maybe"))
}
