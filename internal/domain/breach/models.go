package breach

import (
	"strings"
	"time"

	"pdpconsole/internal/domain/records"
)

type DataBreach struct {
	ID            records.ID `json:"id"`
	Type          string     `json:"type"`
	Severity      string     `json:"severity"`
	Description   string     `json:"description"`
	AffectedUsers int        `json:"affected_users"`
	DateDetected  string     `json:"date_detected"`
	Status        string     `json:"status"`
}

func (b DataBreach) RecordID() string {
	return string(b.ID)
}

type Draft struct {
	Type          string
	Severity      string
	Description   string
	AffectedUsers int
}

type CreatePayload struct {
	Type          string `json:"type"`
	Severity      string `json:"severity"`
	Description   string `json:"description"`
	AffectedUsers int    `json:"affected_users"`
	DateDetected  string `json:"date_detected"`
	Status        string `json:"status"`
}

// NewPayload stamps the draft with today's UTC date and the initial status.
func NewPayload(d Draft, now time.Time) CreatePayload {
	return CreatePayload{
		Type:          d.Type,
		Severity:      d.Severity,
		Description:   d.Description,
		AffectedUsers: d.AffectedUsers,
		DateDetected:  now.UTC().Format(time.DateOnly),
		Status:        StatusUnderInvestigation,
	}
}

func SeverityClass(severity string) string {
	return "severity-" + strings.ToLower(strings.TrimSpace(severity))
}
