package mailer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfigured(t *testing.T) {
	assert.False(t, NewSMTPMailer("smtp.example.com", 587, "", "").Configured())
	assert.False(t, NewSMTPMailer("smtp.example.com", 587, "sender@example.com", "").Configured())
	assert.True(t, NewSMTPMailer("smtp.example.com", 587, "sender@example.com", "app-password").Configured())
}

func TestSendWithoutConfigurationFails(t *testing.T) {
	m := NewSMTPMailer("", 0, "", "")

	assert.Error(t, m.SendWelcomeEmail("to@example.com", "Ana"))
	assert.Error(t, m.SendListingCreatedEmail("to@example.com", "Lakeview Cabin"))
}
