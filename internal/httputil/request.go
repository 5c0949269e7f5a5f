package httputil

import (
	"fmt"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// ParseCSVQuery parses a comma-separated query parameter into a slice of
// trimmed, non-empty values. Returns nil when the parameter is absent or empty.
func ParseCSVQuery(c *gin.Context, name string) []string {
	raw := c.Query(name)
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	values := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			values = append(values, trimmed)
		}
	}

	if len(values) == 0 {
		return nil
	}
	return values
}

// ParseTimeQuery parses an optional RFC3339 timestamp query parameter.
// Returns nil when the parameter is absent.
func ParseTimeQuery(c *gin.Context, name string) (*time.Time, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}

	parsed, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return nil, fmt.Errorf("invalid %s parameter: must be an RFC3339 timestamp", name)
	}

	return &parsed, nil
}
