package contact

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWhatsAppLink(t *testing.T) {
	svc, err := NewService("+254791777572", "Hello Kuha Bites")
	require.NoError(t, err)

	assert.Equal(t, "https://wa.me/254791777572?text=Hello%20Kuha%20Bites", svc.WhatsAppLink(""))
	assert.Equal(t, "https://wa.me/254791777572?text=2%20x%20chips%20%26%20soda%2B", svc.WhatsAppLink("2 x chips & soda+"))
}

func TestNewServiceRequiresPhone(t *testing.T) {
	_, err := NewService(" ", "hi")
	assert.Error(t, err)
}
