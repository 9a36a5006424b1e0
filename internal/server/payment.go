package server

import (
	"net/http"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	authdomain "github.com/griddesk/griddesk/internal/auth/domain"
	paymentdomain "github.com/griddesk/griddesk/internal/payment/domain"
)

type MakePaymentRequest struct {
	BillID        string  `json:"billId"`
	Amount        float64 `json:"amount"`
	PaymentMethod string  `json:"paymentMethod"`
}

func (s *Server) MakePayment(c *gin.Context) {
	var req MakePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	billID, ok := parseID(req.BillID)
	if !ok {
		AbortWithError(c, newValidationError("billId", "invalid_id", "invalid identifier"))
		return
	}

	// Staff record payments on anyone's bill; customers only on their own.
	var customerID snowflake.ID
	role, _ := s.callerRole(c)
	if !authdomain.IsStaffRole(role) {
		username, ok := s.callerUsername(c)
		if !ok {
			AbortWithError(c, ErrUnauthorized)
			return
		}
		profile, err := s.customerSvc.GetByUsername(c.Request.Context(), username)
		if err != nil {
			AbortWithError(c, err)
			return
		}
		customerID = profile.CustomerID
	}

	payment, err := s.paymentSvc.Record(c.Request.Context(), paymentdomain.RecordRequest{
		BillID:      billID,
		CustomerID:  customerID,
		AmountCents: centsFromAmount(req.Amount),
		Method:      req.PaymentMethod,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   "Payment successful",
		"paymentId": payment.ID.String(),
		"amount":    amountFromCents(payment.AmountCents),
		"method":    payment.Method,
		"paidAt":    payment.PaidAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
	})
}

type paymentHistoryRecord struct {
	PaymentID  string  `json:"paymentId"`
	BillID     string  `json:"billId"`
	BillMonth  string  `json:"billMonth"`
	Amount     float64 `json:"amount"`
	Method     string  `json:"method"`
	PaidAt     string  `json:"paidAt"`
	BillStatus string  `json:"billStatus"`
}

func (s *Server) GetPaymentHistory(c *gin.Context) {
	username := c.Param("username")
	if !s.requireSelfOrStaff(c, username) {
		return
	}

	entries, err := s.paymentSvc.HistoryByUsername(c.Request.Context(), username)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	resp := make([]paymentHistoryRecord, 0, len(entries))
	for _, entry := range entries {
		resp = append(resp, paymentHistoryRecord{
			PaymentID:  entry.PaymentID.String(),
			BillID:     entry.BillID.String(),
			BillMonth:  entry.BillMonth.UTC().Format(monthLayout),
			Amount:     amountFromCents(entry.AmountCents),
			Method:     entry.Method,
			PaidAt:     entry.PaidAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
			BillStatus: entry.BillStatus,
		})
	}
	c.JSON(http.StatusOK, resp)
}

type ledgerRecord struct {
	PaymentID    string  `json:"paymentId"`
	BillID       string  `json:"billId"`
	BillMonth    string  `json:"billMonth"`
	CustomerID   string  `json:"customerId"`
	CustomerName string  `json:"customerName"`
	Username     string  `json:"username"`
	Amount       float64 `json:"amount"`
	Method       string  `json:"method"`
	PaidAt       string  `json:"paidAt"`
}

func (s *Server) ListAllPayments(c *gin.Context) {
	var from, to *time.Time
	if raw := optionalQuery(c, "startDate"); raw != nil {
		parsed, ok := parseDate(*raw)
		if !ok {
			AbortWithError(c, newValidationError("startDate", "invalid_date", "use YYYY-MM-DD"))
			return
		}
		from = &parsed
	}
	if raw := optionalQuery(c, "endDate"); raw != nil {
		parsed, ok := parseDate(*raw)
		if !ok {
			AbortWithError(c, newValidationError("endDate", "invalid_date", "use YYYY-MM-DD"))
			return
		}
		// endDate is inclusive.
		end := parsed.Add(24 * time.Hour)
		to = &end
	}

	entries, err := s.paymentSvc.Ledger(c.Request.Context(), from, to)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	resp := make([]ledgerRecord, 0, len(entries))
	for _, entry := range entries {
		resp = append(resp, ledgerRecord{
			PaymentID:    entry.PaymentID.String(),
			BillID:       entry.BillID.String(),
			BillMonth:    entry.BillMonth.UTC().Format(monthLayout),
			CustomerID:   entry.CustomerID.String(),
			CustomerName: entry.CustomerName,
			Username:     entry.Username,
			Amount:       amountFromCents(entry.AmountCents),
			Method:       entry.Method,
			PaidAt:       entry.PaidAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
		})
	}
	c.JSON(http.StatusOK, resp)
}
