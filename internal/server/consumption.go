package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	consumptiondomain "github.com/griddesk/griddesk/internal/consumption/domain"
	refdomain "github.com/griddesk/griddesk/internal/reference/domain"
)

type monthlyConsumptionRow struct {
	ServiceType    string  `json:"Service_Type"`
	UsageAmount    float64 `json:"Usage_Amount"`
	Classification string  `json:"Classification"`
}

func (s *Server) GetMonthlyConsumption(c *gin.Context) {
	username := c.Param("username")
	if !s.requireSelfOrStaff(c, username) {
		return
	}

	month := time.Now().UTC()
	if raw := optionalQuery(c, "monthYear"); raw != nil {
		parsed, ok := parseMonth(*raw)
		if !ok {
			AbortWithError(c, newValidationError("monthYear", "invalid_month", "use YYYY-MM"))
			return
		}
		month = parsed
	}

	rows, err := s.consumptionSvc.MonthlySummary(c.Request.Context(), username, month)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	resp := make([]monthlyConsumptionRow, 0, len(rows))
	for _, row := range rows {
		resp = append(resp, monthlyConsumptionRow{
			ServiceType:    row.ServiceType,
			UsageAmount:    row.Usage,
			Classification: row.Classification,
		})
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) GetEnergyConsumption(c *gin.Context) {
	username := c.Param("username")
	if !s.requireSelfOrStaff(c, username) {
		return
	}

	month, ok := parseMonth(c.Param("monthYear"))
	if !ok {
		AbortWithError(c, newValidationError("monthYear", "invalid_month", "use YYYY-MM"))
		return
	}

	records, err := s.consumptionSvc.ForMonth(c.Request.Context(), username, month)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, records)
}

func (s *Server) GetCustomerConsumption(c *gin.Context) {
	customerID, ok := parseIDParam(c, "customerId")
	if !ok {
		return
	}

	var month *time.Time
	if raw := optionalQuery(c, "monthYear"); raw != nil {
		parsed, ok := parseMonth(*raw)
		if !ok {
			AbortWithError(c, newValidationError("monthYear", "invalid_month", "use YYYY-MM"))
			return
		}
		month = &parsed
	}

	records, err := s.consumptionSvc.ListByCustomer(c.Request.Context(), customerID, month)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, records)
}

type AddConsumptionRequest struct {
	CustomerID  string  `json:"customerId"`
	ServiceType string  `json:"serviceType"`
	UsageAmount float64 `json:"usageAmount"`
	MonthYear   string  `json:"monthYear"`
	Replace     bool    `json:"replace"`
}

func (s *Server) AddConsumption(c *gin.Context) {
	var req AddConsumptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	customerID, ok := parseID(req.CustomerID)
	if !ok {
		AbortWithError(c, newValidationError("customerId", "invalid_id", "invalid identifier"))
		return
	}
	month, ok := parseMonth(req.MonthYear)
	if !ok {
		AbortWithError(c, newValidationError("monthYear", "invalid_month", "use YYYY-MM"))
		return
	}

	ctx := c.Request.Context()

	if s.ingestLimiter.Enabled() {
		serviceType, ok := refdomain.NormalizeServiceType(req.ServiceType)
		if !ok {
			AbortWithError(c, consumptiondomain.ErrInvalidServiceType)
			return
		}
		slotMonth := consumptiondomain.NormalizeMonth(month)
		token, acquired, err := s.ingestLimiter.TryLockSlot(ctx, customerID, serviceType, slotMonth)
		if err != nil {
			AbortWithError(c, err)
			return
		}
		if !acquired {
			AbortWithError(c, ErrConflict)
			return
		}
		defer func() {
			_ = s.ingestLimiter.ReleaseSlot(ctx, customerID, serviceType, slotMonth, token)
		}()
	}

	record, err := s.consumptionSvc.Add(ctx, consumptiondomain.AddRequest{
		CustomerID:  customerID,
		ServiceType: req.ServiceType,
		Month:       month,
		Usage:       req.UsageAmount,
		Replace:     req.Replace,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Consumption data recorded",
		"data":    record,
	})
}

// IngestRateLimit throttles consumption writes per staff user.
func (s *Server) IngestRateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !s.ingestLimiter.Enabled() {
			c.Next()
			return
		}
		username, ok := s.callerUsername(c)
		if !ok {
			AbortWithError(c, ErrUnauthorized)
			return
		}
		result, err := s.ingestLimiter.AllowUser(c.Request.Context(), username)
		if err != nil {
			// Redis being down should not take ingestion down with it.
			c.Next()
			return
		}
		if !result.Allowed {
			if result.RetryAfter > 0 {
				c.Header("Retry-After", result.RetryAfter.Round(time.Second).String())
			}
			AbortWithError(c, ErrTooManyRequests)
			return
		}
		c.Next()
	}
}
