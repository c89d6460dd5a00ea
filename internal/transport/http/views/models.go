package views

import "pdpconsole/internal/domain/records"

type HomePage struct {
	Title string
}

// ListPage carries what both management views render around their cards.
type ListPage struct {
	Title       string
	Heading     string
	BasePath    string
	Error       string
	FormVisible bool
	ToggleLabel string
	Loading     bool
	Empty       string
}

type BreachForm struct {
	Type          string
	Severity      string
	Description   string
	AffectedUsers int
}

// BreachCard and RequestCard carry their links with the id already path-escaped.
type BreachCard struct {
	ID            string
	DeletePath    string
	DetailPath    string
	TypeLabel     string
	SeverityLabel string
	SeverityClass string
	AffectedUsers int
	DateDetected  string
	Status        string
}

type BreachesPage struct {
	ListPage
	Form       BreachForm
	Types      []records.Choice
	Severities []records.Choice
	Cards      []BreachCard
}

type RequestForm struct {
	RequestType string
	UserName    string
	Email       string
	Description string
}

type RequestCard struct {
	ID         string
	DeletePath string
	DetailPath string
	UserName   string
	TypeLabel  string
	Status     string
	Date       string
}

type RequestsPage struct {
	ListPage
	Form          RequestForm
	Types         []records.Choice
	MinNameLength int
	Cards         []RequestCard
}

type ConfirmPage struct {
	Title  string
	Prompt string
	Action string
	Cancel string
}
