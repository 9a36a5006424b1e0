package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	authdomain "github.com/griddesk/griddesk/internal/auth/domain"
	billingdomain "github.com/griddesk/griddesk/internal/billing/domain"
)

type GenerateBillRequest struct {
	CustomerID string `json:"customerId"`
	BillMonth  string `json:"billMonth"`
	Force      bool   `json:"force"`
}

type billRecord struct {
	BillID      string         `json:"billId"`
	Month       string         `json:"month"`
	Total       float64        `json:"total"`
	Paid        float64        `json:"paid"`
	Balance     float64        `json:"balance"`
	Status      string         `json:"status"`
	GeneratedAt string         `json:"generatedAt"`
	Items       []lineItemView `json:"items,omitempty"`
}

type lineItemView struct {
	ServiceType string  `json:"serviceType"`
	Usage       float64 `json:"usage"`
	Rate        float64 `json:"rate"`
	Amount      float64 `json:"amount"`
}

func billView(bill billingdomain.Bill, items []billingdomain.LineItem) billRecord {
	record := billRecord{
		BillID:      bill.ID.String(),
		Month:       bill.Month.UTC().Format(monthLayout),
		Total:       amountFromCents(bill.TotalCents),
		Paid:        amountFromCents(bill.PaidCents),
		Balance:     amountFromCents(bill.BalanceCents()),
		Status:      bill.Status,
		GeneratedAt: bill.GeneratedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
	}
	for _, item := range items {
		record.Items = append(record.Items, lineItemView{
			ServiceType: item.ServiceType,
			Usage:       item.Usage,
			Rate:        amountFromCents(item.RateCents),
			Amount:      amountFromCents(item.AmountCents),
		})
	}
	return record
}

func (s *Server) GenerateBill(c *gin.Context) {
	var req GenerateBillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	customerID, ok := parseID(req.CustomerID)
	if !ok {
		AbortWithError(c, newValidationError("customerId", "invalid_id", "invalid identifier"))
		return
	}
	month, ok := parseMonth(req.BillMonth)
	if !ok {
		AbortWithError(c, newValidationError("billMonth", "invalid_month", "use YYYY-MM"))
		return
	}

	detail, err := s.billingSvc.Generate(c.Request.Context(), billingdomain.GenerateRequest{
		CustomerID: customerID,
		Month:      month,
		Force:      req.Force,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Bill generated successfully",
		"bill":    billView(detail.Bill, detail.Items),
	})
}

func (s *Server) GetCustomerBills(c *gin.Context) {
	customerID, ok := parseIDParam(c, "customerId")
	if !ok {
		return
	}

	profile, err := s.customerSvc.GetByID(c.Request.Context(), customerID)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	if !s.requireSelfOrStaff(c, profile.Username) {
		return
	}

	bills, err := s.billingSvc.ListByUsername(c.Request.Context(), profile.Username)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	resp := make([]billRecord, 0, len(bills))
	for _, bill := range bills {
		resp = append(resp, billView(bill, nil))
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) GetPendingBills(c *gin.Context) {
	username := c.Param("username")
	if !s.requireSelfOrStaff(c, username) {
		return
	}

	bills, err := s.billingSvc.PendingByUsername(c.Request.Context(), username)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	resp := make([]billRecord, 0, len(bills))
	for _, bill := range bills {
		resp = append(resp, billView(bill, nil))
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) GetBillStatement(c *gin.Context) {
	billID, ok := parseIDParam(c, "billId")
	if !ok {
		return
	}

	detail, err := s.billingSvc.Detail(c.Request.Context(), billID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	role, _ := s.callerRole(c)
	if !authdomain.IsStaffRole(role) {
		profile, err := s.customerSvc.GetByID(c.Request.Context(), detail.Bill.CustomerID)
		if err != nil {
			AbortWithError(c, err)
			return
		}
		caller, _ := s.callerUsername(c)
		if !strings.EqualFold(caller, profile.Username) {
			AbortWithError(c, ErrForbidden)
			return
		}
	}

	pdf, err := s.billingSvc.Statement(c.Request.Context(), billID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="bill-`+billID.String()+`.pdf"`)
	c.Data(http.StatusOK, "application/pdf", pdf)
}
