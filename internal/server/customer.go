package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	authdomain "github.com/griddesk/griddesk/internal/auth/domain"
	customerdomain "github.com/griddesk/griddesk/internal/customer/domain"
)

func (s *Server) GetCustomerID(c *gin.Context) {
	username := c.Param("username")
	if !s.requireSelfOrStaff(c, username) {
		return
	}

	profile, err := s.customerSvc.GetByUsername(c.Request.Context(), username)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"custId": profile.CustomerID.String()})
}

func (s *Server) ListCustomers(c *gin.Context) {
	profiles, err := s.customerSvc.List(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, profiles)
}

type UpdateInfoRequest struct {
	Username       string  `json:"username"`
	Password       *string `json:"password"`
	Phone          *string `json:"phone"`
	Address        *string `json:"address"`
	Classification *string `json:"classification"`
}

func (s *Server) UpdateCustomerInfo(c *gin.Context) {
	var req UpdateInfoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	username := strings.TrimSpace(req.Username)
	if username == "" {
		AbortWithError(c, newValidationError("username", "required", "username is required"))
		return
	}
	if !s.requireSelfOrStaff(c, username) {
		return
	}

	user, err := s.authsvc.GetUserByUsername(c.Request.Context(), username)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	if user.Role != authdomain.RoleCustomer {
		AbortWithError(c, customerdomain.ErrNotFound)
		return
	}

	err = s.customerSvc.UpdateInfo(c.Request.Context(), customerdomain.UpdateInfoRequest{
		UserID:         user.ID,
		Password:       req.Password,
		Phone:          req.Phone,
		Address:        req.Address,
		Classification: req.Classification,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Update successful",
	})
}
