package server

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	authdomain "github.com/griddesk/griddesk/internal/auth/domain"
)

const (
	contextUserIDKey   = "user_id"
	contextUsernameKey = "username"
	contextRoleKey     = "role"
)

// AuthRequired authenticates the bearer token and loads the caller's
// identity into the request context.
func (s *Server) AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := s.sessions.ReadToken(c)
		if !ok {
			AbortWithError(c, ErrUnauthorized)
			return
		}

		session, err := s.authsvc.Authenticate(c.Request.Context(), token)
		if err != nil {
			AbortWithError(c, err)
			return
		}

		user, err := s.authsvc.GetUser(c.Request.Context(), session.UserID)
		if err != nil {
			AbortWithError(c, ErrUnauthorized)
			return
		}

		c.Set(contextUserIDKey, user.ID)
		c.Set(contextUsernameKey, user.Username)
		c.Set(contextRoleKey, user.Role)
		c.Next()
	}
}

// Authorize gates the route on the caller's role having the capability.
func (s *Server) Authorize(object, action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := s.callerID(c)
		if !ok {
			AbortWithError(c, ErrUnauthorized)
			return
		}
		actor := fmt.Sprintf("user:%d", userID)
		if err := s.authzSvc.Authorize(c.Request.Context(), actor, object, action); err != nil {
			AbortWithError(c, err)
			return
		}
		c.Next()
	}
}

// RequireStaff rejects customers; employees and admins pass.
func (s *Server) RequireStaff() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, ok := s.callerRole(c)
		if !ok {
			AbortWithError(c, ErrUnauthorized)
			return
		}
		if !authdomain.IsStaffRole(role) {
			AbortWithError(c, ErrForbidden)
			return
		}
		c.Next()
	}
}

func (s *Server) callerID(c *gin.Context) (snowflake.ID, bool) {
	value, ok := c.Get(contextUserIDKey)
	if !ok {
		return 0, false
	}
	id, ok := value.(snowflake.ID)
	return id, ok
}

func (s *Server) callerUsername(c *gin.Context) (string, bool) {
	value, ok := c.Get(contextUsernameKey)
	if !ok {
		return "", false
	}
	username, ok := value.(string)
	return username, ok && username != ""
}

func (s *Server) callerRole(c *gin.Context) (string, bool) {
	value, ok := c.Get(contextRoleKey)
	if !ok {
		return "", false
	}
	role, ok := value.(string)
	return role, ok && role != ""
}

// requireSelfOrStaff allows customers through only for their own resources.
func (s *Server) requireSelfOrStaff(c *gin.Context, username string) bool {
	role, ok := s.callerRole(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return false
	}
	if authdomain.IsStaffRole(role) {
		return true
	}
	caller, ok := s.callerUsername(c)
	if !ok || !strings.EqualFold(caller, strings.TrimSpace(username)) {
		AbortWithError(c, ErrForbidden)
		return false
	}
	return true
}
