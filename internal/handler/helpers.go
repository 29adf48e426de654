package handler

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ohmypoop/backend/internal/period"
)

// ErrorResponse is the envelope every error reply uses
type ErrorResponse struct {
	Code    string  `json:"code"`
	Message string  `json:"message"`
	Details *string `json:"details,omitempty"`
}

// stringPtr creates a pointer to a string
func stringPtr(s string) *string {
	return &s
}

// requireUserID extracts the user_id query parameter
func requireUserID(c *gin.Context) (string, error) {
	userID := c.Query("user_id")
	if userID == "" {
		return "", fmt.Errorf("user_id query parameter is required")
	}
	return userID, nil
}

// parsePeriodQuery reads the period and date query parameters. The period
// defaults to day and the date to now.
func parsePeriodQuery(c *gin.Context) (period.Granularity, time.Time, error) {
	g := period.Day
	if raw := c.Query("period"); raw != "" {
		parsed, err := period.Parse(raw)
		if err != nil {
			return "", time.Time{}, err
		}
		g = parsed
	}

	ref := time.Now()
	if raw := c.Query("date"); raw != "" {
		parsed, err := time.ParseInLocation("2006-01-02", raw, time.Local)
		if err != nil {
			return "", time.Time{}, fmt.Errorf("invalid date: expected YYYY-MM-DD, got %q", raw)
		}
		ref = parsed
	}

	return g, ref, nil
}
