// Package session reads opaque bearer tokens from inbound requests.
package session

import (
	"strings"

	"github.com/gin-gonic/gin"
)

const bearerPrefix = "Bearer "

// Manager extracts session tokens from the Authorization header.
type Manager struct{}

func NewManager() *Manager {
	return &Manager{}
}

// ReadToken returns the bearer token from the Authorization header if present.
func (m *Manager) ReadToken(c *gin.Context) (string, bool) {
	header := strings.TrimSpace(c.GetHeader("Authorization"))
	if header == "" {
		return "", false
	}
	if len(header) <= len(bearerPrefix) || !strings.EqualFold(header[:len(bearerPrefix)], bearerPrefix) {
		return "", false
	}
	token := strings.TrimSpace(header[len(bearerPrefix):])
	if token == "" {
		return "", false
	}
	return token, true
}
