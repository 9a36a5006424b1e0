package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	employeedomain "github.com/griddesk/griddesk/internal/employee/domain"
)

func (s *Server) GetEmployeeProfile(c *gin.Context) {
	employeeID, ok := parseIDParam(c, "employeeId")
	if !ok {
		return
	}

	profile, err := s.employeeSvc.GetProfile(c.Request.Context(), employeeID)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

func (s *Server) GetEmployeeProfileByUsername(c *gin.Context) {
	profile, err := s.employeeSvc.GetByUsername(c.Request.Context(), c.Param("username"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

type employeeStatsResponse struct {
	TotalReports    int64                 `json:"totalReports"`
	ResolvedReports int64                 `json:"resolvedReports"`
	PendingReports  int64                 `json:"pendingReports"`
	TotalPayments   float64               `json:"totalPayments"`
	RecentPayments  []recentPaymentRecord `json:"recentPayments"`
}

type recentPaymentRecord struct {
	PaymentID    string  `json:"paymentId"`
	CustomerName string  `json:"customerName"`
	Amount       float64 `json:"amount"`
	Method       string  `json:"method"`
	PaidAt       string  `json:"paidAt"`
}

func (s *Server) GetEmployeeStats(c *gin.Context) {
	employeeID, ok := parseIDParam(c, "employeeId")
	if !ok {
		return
	}

	stats, err := s.employeeSvc.Stats(c.Request.Context(), employeeID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	resp := employeeStatsResponse{
		TotalReports:    stats.TotalReports,
		ResolvedReports: stats.ResolvedReports,
		PendingReports:  stats.PendingReports,
		TotalPayments:   amountFromCents(stats.MonthPaymentsCents),
		RecentPayments:  make([]recentPaymentRecord, 0, len(stats.RecentPayments)),
	}
	for _, payment := range stats.RecentPayments {
		resp.RecentPayments = append(resp.RecentPayments, recentPaymentRecord{
			PaymentID:    payment.PaymentID.String(),
			CustomerName: payment.CustomerName,
			Amount:       amountFromCents(payment.AmountCents),
			Method:       payment.Method,
			PaidAt:       payment.PaidAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
		})
	}

	c.JSON(http.StatusOK, resp)
}

type UpdateEmployeeInfoRequest struct {
	EmployeeID string  `json:"employeeId"`
	Password   *string `json:"password"`
	Phone      *string `json:"phone"`
	Position   *string `json:"position"`
	Department *string `json:"department"`
}

func (s *Server) UpdateEmployeeInfo(c *gin.Context) {
	var req UpdateEmployeeInfoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	employeeID, ok := parseID(req.EmployeeID)
	if !ok {
		AbortWithError(c, newValidationError("employeeId", "invalid_id", "invalid identifier"))
		return
	}

	profile, err := s.employeeSvc.GetProfile(c.Request.Context(), employeeID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	err = s.employeeSvc.UpdateInfo(c.Request.Context(), employeedomain.UpdateInfoRequest{
		UserID:     profile.UserID,
		Password:   req.Password,
		Phone:      req.Phone,
		Position:   req.Position,
		Department: req.Department,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Employee profile updated"})
}
