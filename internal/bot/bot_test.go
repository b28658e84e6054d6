package bot

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeepLink(t *testing.T) {
	assert.Equal(t, "https://crm.example.com/?uid=379185153",
		DeepLink("https://crm.example.com", "379185153"))

	// trailing slashes on the base must not double up
	assert.Equal(t, "https://crm.example.com/?uid=42",
		DeepLink("https://crm.example.com/", "42"))

	assert.Equal(t, "http://localhost:8080/?uid=a%26b",
		DeepLink("http://localhost:8080", "a&b"))
}
