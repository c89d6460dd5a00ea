package privacyreq

import "pdpconsole/internal/domain/records"

const (
	TypeDataAccess     = "data-access"
	TypeDataDeletion   = "data-deletion"
	TypeDataCorrection = "data-correction"
)

const StatusProcessing = "processing"

const DeletePrompt = "Are you sure you want to delete this request?"

const (
	FieldRequestType = "request_type"
	FieldUserName    = "user_name"
	FieldEmail       = "email"
	FieldDescription = "description"
)

// UserNameMinLength mirrors the minlength attribute of the requester input.
const UserNameMinLength = 2

var FormFields = []string{FieldRequestType, FieldUserName, FieldEmail, FieldDescription}

var Types = []records.Choice{
	{Value: TypeDataAccess, Label: "Data access"},
	{Value: TypeDataDeletion, Label: "Data deletion"},
	{Value: TypeDataCorrection, Label: "Data correction"},
}

func DefaultDraft() Draft {
	return Draft{RequestType: TypeDataAccess}
}

func ValidateTables() error {
	return records.ValidateChoices("request type", Types, DefaultDraft().RequestType)
}
