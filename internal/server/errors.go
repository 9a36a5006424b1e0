package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	authdomain "github.com/griddesk/griddesk/internal/auth/domain"
	"github.com/griddesk/griddesk/internal/authorization"
	billingdomain "github.com/griddesk/griddesk/internal/billing/domain"
	consumptiondomain "github.com/griddesk/griddesk/internal/consumption/domain"
	customerdomain "github.com/griddesk/griddesk/internal/customer/domain"
	employeedomain "github.com/griddesk/griddesk/internal/employee/domain"
	paymentdomain "github.com/griddesk/griddesk/internal/payment/domain"
	reportdomain "github.com/griddesk/griddesk/internal/report/domain"
	signupdomain "github.com/griddesk/griddesk/internal/signup/domain"
	"gorm.io/gorm"
)

type ValidationError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

type ValidationErrors struct {
	Errors []ValidationError `json:"errors"`
}

func (v ValidationErrors) Error() string {
	return "validation error"
}

type errorPayload struct {
	Type    string            `json:"type"`
	Message string            `json:"message"`
	Errors  []ValidationError `json:"errors,omitempty"`
}

type errorResponse struct {
	Error errorPayload `json:"error"`
}

var (
	ErrUnauthorized   = errors.New("unauthorized")
	ErrForbidden      = errors.New("forbidden")
	ErrConflict       = errors.New("conflict")
	ErrInternal       = errors.New("internal_error")
	ErrNotFound       = errors.New("not_found")
	ErrInvalidRequest = errors.New("invalid_request")
	ErrTooManyRequests = errors.New("too_many_requests")
)

func ErrorHandlingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() {
			return
		}

		lastErr := c.Errors.Last()
		if lastErr == nil {
			return
		}

		status, payload := mapError(lastErr.Err)
		c.Header("Content-Type", "application/json")
		c.AbortWithStatusJSON(status, errorResponse{Error: payload})
	}
}

func AbortWithError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	c.Abort()
}

func invalidRequestError() error {
	return newValidationError("request", "invalid_request", "invalid request")
}

func newValidationError(field, code, message string) error {
	return &ValidationErrors{
		Errors: []ValidationError{
			{
				Field:   field,
				Code:    code,
				Message: message,
			},
		},
	}
}

func mapError(err error) (int, errorPayload) {
	if err == nil {
		return http.StatusInternalServerError, errorPayload{
			Type:    "internal_error",
			Message: "internal server error",
		}
	}

	if vErr := asValidationErrors(err); vErr != nil {
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: "validation error",
			Errors:  vErr.Errors,
		}
	}

	if isValidationError(err) {
		code := validationErrorCode(err)
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: "validation error",
			Errors: []ValidationError{
				{
					Field:   validationErrorField(code),
					Code:    code,
					Message: validationErrorMessage(code),
				},
			},
		}
	}

	switch {
	case errors.Is(err, ErrUnauthorized),
		errors.Is(err, authdomain.ErrInvalidCredentials),
		errors.Is(err, authdomain.ErrInvalidSession),
		errors.Is(err, authdomain.ErrSessionExpired),
		errors.Is(err, authdomain.ErrSessionRevoked),
		errors.Is(err, authdomain.ErrSessionNotFound):
		return http.StatusUnauthorized, errorPayload{
			Type:    "unauthorized",
			Message: "unauthorized",
		}
	case errors.Is(err, ErrForbidden),
		errors.Is(err, authorization.ErrForbidden):
		return http.StatusForbidden, errorPayload{
			Type:    "forbidden",
			Message: "forbidden",
		}
	case isConflictError(err):
		return http.StatusConflict, errorPayload{
			Type:    "conflict",
			Message: conflictMessage(err),
		}
	case isNotFoundError(err):
		return http.StatusNotFound, errorPayload{
			Type:    "not_found",
			Message: notFoundMessage(err),
		}
	case errors.Is(err, ErrTooManyRequests):
		return http.StatusTooManyRequests, errorPayload{
			Type:    "too_many_requests",
			Message: "too many requests",
		}
	case errors.Is(err, ErrInternal):
		return http.StatusInternalServerError, errorPayload{
			Type:    "internal_error",
			Message: "internal server error",
		}
	default:
		return http.StatusInternalServerError, errorPayload{
			Type:    "internal_error",
			Message: "internal server error",
		}
	}
}

func asValidationErrors(err error) *ValidationErrors {
	var vErr *ValidationErrors
	if errors.As(err, &vErr) && vErr != nil {
		return vErr
	}
	return nil
}

func isValidationError(err error) bool {
	switch {
	case errors.Is(err, ErrInvalidRequest),
		errors.Is(err, signupdomain.ErrInvalidRequest),
		errors.Is(err, signupdomain.ErrInvalidRole),
		errors.Is(err, signupdomain.ErrInvalidClassification),
		errors.Is(err, signupdomain.ErrInvalidSkill),
		errors.Is(err, customerdomain.ErrInvalidClassification),
		errors.Is(err, customerdomain.ErrInvalidPassword),
		errors.Is(err, customerdomain.ErrNothingToUpdate),
		errors.Is(err, employeedomain.ErrInvalidPassword),
		errors.Is(err, employeedomain.ErrNothingToUpdate),
		errors.Is(err, consumptiondomain.ErrInvalidServiceType),
		errors.Is(err, consumptiondomain.ErrInvalidUsage),
		errors.Is(err, paymentdomain.ErrInvalidAmount),
		errors.Is(err, paymentdomain.ErrInvalidMethod),
		errors.Is(err, reportdomain.ErrInvalidStatus),
		errors.Is(err, reportdomain.ErrInvalidServiceType),
		errors.Is(err, reportdomain.ErrEmptyDescription),
		errors.Is(err, reportdomain.ErrEmployeeRequired):
		return true
	default:
		return false
	}
}

func isConflictError(err error) bool {
	switch {
	case errors.Is(err, ErrConflict),
		errors.Is(err, authdomain.ErrUserExists),
		errors.Is(err, consumptiondomain.ErrDuplicateRecord),
		errors.Is(err, billingdomain.ErrBillExists),
		errors.Is(err, billingdomain.ErrBillHasPayments),
		errors.Is(err, paymentdomain.ErrBillAlreadyPaid),
		errors.Is(err, paymentdomain.ErrOverpayment),
		errors.Is(err, reportdomain.ErrInvalidTransition):
		return true
	default:
		return false
	}
}

func isNotFoundError(err error) bool {
	switch {
	case errors.Is(err, ErrNotFound),
		errors.Is(err, authdomain.ErrUserNotFound),
		errors.Is(err, customerdomain.ErrNotFound),
		errors.Is(err, employeedomain.ErrNotFound),
		errors.Is(err, consumptiondomain.ErrCustomerNotFound),
		errors.Is(err, consumptiondomain.ErrNoRecords),
		errors.Is(err, billingdomain.ErrCustomerNotFound),
		errors.Is(err, billingdomain.ErrBillNotFound),
		errors.Is(err, billingdomain.ErrNoBills),
		errors.Is(err, billingdomain.ErrNoConsumption),
		errors.Is(err, paymentdomain.ErrBillNotFound),
		errors.Is(err, paymentdomain.ErrNoPayments),
		errors.Is(err, reportdomain.ErrReportNotFound),
		errors.Is(err, reportdomain.ErrNoReports),
		errors.Is(err, reportdomain.ErrCustomerNotFound),
		errors.Is(err, reportdomain.ErrEmployeeNotFound),
		errors.Is(err, gorm.ErrRecordNotFound):
		return true
	default:
		return false
	}
}

func conflictMessage(err error) string {
	switch {
	case errors.Is(err, consumptiondomain.ErrDuplicateRecord):
		return "consumption already recorded for this month"
	case errors.Is(err, billingdomain.ErrBillExists):
		return "bill already generated for this month"
	case errors.Is(err, billingdomain.ErrBillHasPayments):
		return "bill has payments and cannot be regenerated"
	case errors.Is(err, paymentdomain.ErrBillAlreadyPaid):
		return "bill is already fully paid"
	case errors.Is(err, paymentdomain.ErrOverpayment):
		return "payment exceeds outstanding balance"
	case errors.Is(err, reportdomain.ErrInvalidTransition):
		return "report status cannot move backwards"
	default:
		return "conflict"
	}
}

func notFoundMessage(err error) string {
	switch {
	case errors.Is(err, consumptiondomain.ErrNoRecords):
		return "no consumption data found"
	case errors.Is(err, billingdomain.ErrNoBills):
		return "no pending bills found"
	case errors.Is(err, billingdomain.ErrNoConsumption):
		return "no consumption data found for this customer and month"
	case errors.Is(err, paymentdomain.ErrNoPayments):
		return "no payment history found"
	case errors.Is(err, reportdomain.ErrNoReports):
		return "no failure reports found"
	default:
		return "not found"
	}
}

func validationErrorCode(err error) string {
	switch {
	case errors.Is(err, ErrInvalidRequest),
		errors.Is(err, signupdomain.ErrInvalidRequest):
		return "invalid_request"
	default:
		return err.Error()
	}
}

func validationErrorField(code string) string {
	if code == "invalid_request" {
		return "request"
	}
	if strings.HasPrefix(code, "invalid_") {
		return strings.TrimPrefix(code, "invalid_")
	}
	return ""
}

func validationErrorMessage(code string) string {
	switch code {
	case "invalid_request":
		return "invalid request"
	default:
		return "invalid value"
	}
}

func classifyErrorForLog(err error) (string, string) {
	if err == nil {
		return "", ""
	}
	status, payload := mapError(err)
	switch {
	case status >= 500:
		return "internal", payload.Type
	case status >= 400:
		return "client", payload.Type
	default:
		return "", ""
	}
}
