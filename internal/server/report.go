package server

import (
	"net/http"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	authdomain "github.com/griddesk/griddesk/internal/auth/domain"
	reportdomain "github.com/griddesk/griddesk/internal/report/domain"
)

type ReportFailureRequest struct {
	Username    string `json:"username"`
	ServiceType string `json:"serviceType"`
	Description string `json:"description"`
}

func (s *Server) ReportFailure(c *gin.Context) {
	var req ReportFailureRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	// Customers file reports for themselves regardless of the payload.
	username := strings.TrimSpace(req.Username)
	role, _ := s.callerRole(c)
	if !authdomain.IsStaffRole(role) {
		caller, ok := s.callerUsername(c)
		if !ok {
			AbortWithError(c, ErrUnauthorized)
			return
		}
		username = caller
	}
	if username == "" {
		AbortWithError(c, newValidationError("username", "required", "username is required"))
		return
	}

	profile, err := s.customerSvc.GetByUsername(c.Request.Context(), username)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	created, err := s.reportSvc.Create(c.Request.Context(), reportdomain.CreateRequest{
		CustomerID:  profile.CustomerID,
		ServiceType: req.ServiceType,
		Description: req.Description,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Failure reported successfully",
		"report":  created,
	})
}

func (s *Server) GetFailureReports(c *gin.Context) {
	username := c.Param("username")
	if !s.requireSelfOrStaff(c, username) {
		return
	}

	reports, err := s.reportSvc.ListByUsername(c.Request.Context(), username, optionalQuery(c, "status"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, reports)
}

func (s *Server) ListAllFailureReports(c *gin.Context) {
	reports, err := s.reportSvc.ListAll(c.Request.Context(), reportdomain.ListFilter{
		Status:      optionalQuery(c, "status"),
		ServiceType: optionalQuery(c, "serviceType"),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, reports)
}

type UpdateReportStatusRequest struct {
	ReportID   string `json:"reportId"`
	Status     string `json:"status"`
	EmployeeID string `json:"employeeId"`
	Notes      string `json:"notes"`
}

func (s *Server) UpdateReportStatus(c *gin.Context) {
	var req UpdateReportStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	reportID, ok := parseID(req.ReportID)
	if !ok {
		AbortWithError(c, newValidationError("reportId", "invalid_id", "invalid identifier"))
		return
	}

	var employeeID *snowflake.ID
	if strings.TrimSpace(req.EmployeeID) != "" {
		id, ok := parseID(req.EmployeeID)
		if !ok {
			AbortWithError(c, newValidationError("employeeId", "invalid_id", "invalid identifier"))
			return
		}
		employeeID = &id
	}

	updated, err := s.reportSvc.UpdateStatus(c.Request.Context(), reportdomain.UpdateRequest{
		ReportID:   reportID,
		Status:     req.Status,
		EmployeeID: employeeID,
		Notes:      req.Notes,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Report status updated",
		"report":  updated,
	})
}
