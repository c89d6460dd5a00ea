package breach

import (
	"errors"

	"pdpconsole/internal/domain/records"
)

const (
	TypeEmailLeak        = "email-leak"
	TypePasswordLeak     = "password-leak"
	TypePaymentDataLeak  = "payment-data-leak"
	TypePersonalDataLeak = "personal-data-leak"
)

const (
	SeverityLow      = "low"
	SeverityMedium   = "medium"
	SeverityHigh     = "high"
	SeverityCritical = "critical"
)

const StatusUnderInvestigation = "under investigation"

const DeletePrompt = "Are you sure you want to delete this breach?"

const (
	FieldType          = "type"
	FieldSeverity      = "severity"
	FieldDescription   = "description"
	FieldAffectedUsers = "affected_users"
)

// FormFields lists the draft fields in form order.
var FormFields = []string{FieldType, FieldSeverity, FieldAffectedUsers, FieldDescription}

var Types = []records.Choice{
	{Value: TypeEmailLeak, Label: "Email address leak"},
	{Value: TypePasswordLeak, Label: "Password leak"},
	{Value: TypePaymentDataLeak, Label: "Payment data leak"},
	{Value: TypePersonalDataLeak, Label: "Personal data leak"},
}

var Severities = []records.Choice{
	{Value: SeverityLow, Label: "Low"},
	{Value: SeverityMedium, Label: "Medium"},
	{Value: SeverityHigh, Label: "High"},
	{Value: SeverityCritical, Label: "Critical"},
}

func DefaultDraft() Draft {
	return Draft{
		Type:          TypeEmailLeak,
		Severity:      SeverityMedium,
		Description:   "",
		AffectedUsers: 0,
	}
}

func ValidateTables() error {
	d := DefaultDraft()
	return errors.Join(
		records.ValidateChoices("breach type", Types, d.Type),
		records.ValidateChoices("breach severity", Severities, d.Severity),
	)
}
