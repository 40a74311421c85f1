package entity

import (
	"errors"
	"strings"
)

type Channel string

const (
	ChannelEmail     Channel = "email"
	ChannelWhatsApp  Channel = "whatsapp"
	ChannelInstagram Channel = "instagram"
)

var Channels = []Channel{ChannelEmail, ChannelWhatsApp, ChannelInstagram}

func ParseChannel(s string) (Channel, error) {
	ch := Channel(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Channels {
		if ch == known {
			return ch, nil
		}
	}
	return "", ErrInvalidChannel
}

// HasTimestamp reports whether the channel tracks when it was sent.
func (c Channel) HasTimestamp() bool {
	return c == ChannelEmail || c == ChannelWhatsApp
}

var (
	ErrLeadNotFound          = errors.New("lead not found")
	ErrLeadAlreadyExists     = errors.New("lead already exists")
	ErrBusinessNameRequired  = errors.New("business name is required")
	ErrInvalidChannel        = errors.New("invalid outreach channel")
	ErrInvalidResponseStatus = errors.New("invalid response status")
	ErrInvalidLeadStatus     = errors.New("invalid lead status filter")
)
