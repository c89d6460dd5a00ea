package privacyreq

import (
	"fmt"
	"time"

	"pdpconsole/internal/domain/records"
)

type PrivacyRequest struct {
	ID          records.ID `json:"id"`
	RequestType string     `json:"request_type"`
	UserName    string     `json:"user_name"`
	Email       string     `json:"email"`
	Description string     `json:"description"`
	Status      string     `json:"status"`
	Date        string     `json:"date"`
}

func (p PrivacyRequest) RecordID() string {
	return string(p.ID)
}

type Draft struct {
	RequestType string
	UserName    string
	Email       string
	Description string
}

type CreatePayload struct {
	RequestType string `json:"request_type"`
	UserName    string `json:"user_name"`
	Email       string `json:"email"`
	Description string `json:"description"`
	Status      string `json:"status"`
	Date        string `json:"date"`
}

func NewPayload(d Draft, now time.Time) CreatePayload {
	return CreatePayload{
		RequestType: d.RequestType,
		UserName:    d.UserName,
		Email:       d.Email,
		Description: d.Description,
		Status:      StatusProcessing,
		Date:        now.UTC().Format(time.DateOnly),
	}
}

func SetField(d *Draft, name, raw string) error {
	switch name {
	case FieldRequestType:
		d.RequestType = raw
	case FieldUserName:
		d.UserName = raw
	case FieldEmail:
		d.Email = raw
	case FieldDescription:
		d.Description = raw
	default:
		return fmt.Errorf("%w: %s", records.ErrUnknownField, name)
	}
	return nil
}
