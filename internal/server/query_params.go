package server

import (
	"math"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
)

const monthLayout = "2006-01"

func parseIDParam(c *gin.Context, name string) (snowflake.ID, bool) {
	raw := strings.TrimSpace(c.Param(name))
	id, err := snowflake.ParseString(raw)
	if err != nil || id == 0 {
		AbortWithError(c, newValidationError(name, "invalid_id", "invalid identifier"))
		return 0, false
	}
	return id, true
}

func parseID(raw string) (snowflake.ID, bool) {
	id, err := snowflake.ParseString(strings.TrimSpace(raw))
	if err != nil || id == 0 {
		return 0, false
	}
	return id, true
}

// parseMonth accepts YYYY-MM or a full date and keeps only the month.
func parseMonth(raw string) (time.Time, bool) {
	trimmed := strings.TrimSpace(raw)
	if t, err := time.Parse(monthLayout, trimmed); err == nil {
		return t, true
	}
	if t, err := time.Parse("2006-01-02", trimmed); err == nil {
		return t, true
	}
	return time.Time{}, false
}

func parseDate(raw string) (time.Time, bool) {
	t, err := time.Parse("2006-01-02", strings.TrimSpace(raw))
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

func centsFromAmount(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

func amountFromCents(cents int64) float64 {
	return float64(cents) / 100
}

func optionalQuery(c *gin.Context, name string) *string {
	value := strings.TrimSpace(c.Query(name))
	if value == "" {
		return nil
	}
	return &value
}
