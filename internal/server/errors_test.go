package server

import (
	"errors"
	"net/http"
	"testing"

	authdomain "github.com/griddesk/griddesk/internal/auth/domain"
	billingdomain "github.com/griddesk/griddesk/internal/billing/domain"
	consumptiondomain "github.com/griddesk/griddesk/internal/consumption/domain"
	paymentdomain "github.com/griddesk/griddesk/internal/payment/domain"
	reportdomain "github.com/griddesk/griddesk/internal/report/domain"
	"github.com/stretchr/testify/assert"
)

func TestMapErrorStatusCodes(t *testing.T) {
	cases := []struct {
		err    error
		status int
		kind   string
	}{
		{newValidationError("usageAmount", "invalid_usage", "usage must be positive"), http.StatusBadRequest, "validation_error"},
		{consumptiondomain.ErrInvalidServiceType, http.StatusBadRequest, "validation_error"},
		{paymentdomain.ErrInvalidMethod, http.StatusBadRequest, "validation_error"},
		{reportdomain.ErrEmployeeRequired, http.StatusBadRequest, "validation_error"},

		{authdomain.ErrInvalidCredentials, http.StatusUnauthorized, "unauthorized"},
		{authdomain.ErrSessionExpired, http.StatusUnauthorized, "unauthorized"},
		{ErrForbidden, http.StatusForbidden, "forbidden"},

		{authdomain.ErrUserExists, http.StatusConflict, "conflict"},
		{consumptiondomain.ErrDuplicateRecord, http.StatusConflict, "conflict"},
		{billingdomain.ErrBillExists, http.StatusConflict, "conflict"},
		{paymentdomain.ErrOverpayment, http.StatusConflict, "conflict"},
		{reportdomain.ErrInvalidTransition, http.StatusConflict, "conflict"},

		{billingdomain.ErrNoBills, http.StatusNotFound, "not_found"},
		{paymentdomain.ErrNoPayments, http.StatusNotFound, "not_found"},
		{reportdomain.ErrNoReports, http.StatusNotFound, "not_found"},
		{consumptiondomain.ErrCustomerNotFound, http.StatusNotFound, "not_found"},

		{ErrTooManyRequests, http.StatusTooManyRequests, "too_many_requests"},
		{errors.New("boom"), http.StatusInternalServerError, "internal_error"},
	}

	for _, tc := range cases {
		status, payload := mapError(tc.err)
		assert.Equal(t, tc.status, status, "error %v", tc.err)
		assert.Equal(t, tc.kind, payload.Type, "error %v", tc.err)
	}
}

func TestNotFoundMessages(t *testing.T) {
	_, payload := mapError(billingdomain.ErrNoBills)
	assert.Equal(t, "no pending bills found", payload.Message)

	_, payload = mapError(paymentdomain.ErrNoPayments)
	assert.Equal(t, "no payment history found", payload.Message)

	_, payload = mapError(reportdomain.ErrNoReports)
	assert.Equal(t, "no failure reports found", payload.Message)
}

func TestClassifyErrorForLog(t *testing.T) {
	class, kind := classifyErrorForLog(errors.New("boom"))
	assert.Equal(t, "internal", class)
	assert.Equal(t, "internal_error", kind)

	class, kind = classifyErrorForLog(billingdomain.ErrNoBills)
	assert.Equal(t, "client", class)
	assert.Equal(t, "not_found", kind)

	class, kind = classifyErrorForLog(nil)
	assert.Empty(t, class)
	assert.Empty(t, kind)
}
