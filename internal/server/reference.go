package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (s *Server) ListServiceTypes(c *gin.Context) {
	items, err := s.refrepo.ListServiceTypes(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (s *Server) ListClassifications(c *gin.Context) {
	items, err := s.refrepo.ListClassifications(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (s *Server) ListPaymentMethods(c *gin.Context) {
	items, err := s.refrepo.ListPaymentMethods(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}
