package console

import (
	"net/url"
	"strconv"

	"pdpconsole/internal/domain/breach"
	"pdpconsole/internal/domain/privacyreq"
	"pdpconsole/internal/domain/records"
	"pdpconsole/internal/platform/report"
	"pdpconsole/internal/transport/http/views"
)

// kind describes one management view: where it is served, how its state maps
// to a page and how its list maps to a PDF register.
type kind[T records.Record, D any, P any] struct {
	name     string
	page     string
	title    string
	heading  string
	openForm string
	empty    string
	messages map[records.ErrorKind]string
	prompt   string
	fields   []string
	view     func(*Views) *records.View[T, D, P]
	render   func(list views.ListPage, items []T, draft D) any
	table    func(items []T) report.Table
}

func (k kind[T, D, P]) basePath() string {
	return "/" + k.name
}

func (k kind[T, D, P]) message(err records.ErrorKind) string {
	if err == records.ErrNone {
		return ""
	}
	if msg, ok := k.messages[err]; ok {
		return msg
	}
	return err.Message()
}

func (k kind[T, D, P]) toggleLabel(visible bool) string {
	if visible {
		return "Hide form"
	}
	return k.openForm
}

var breachKind = kind[breach.DataBreach, breach.Draft, breach.CreatePayload]{
	name:     "breaches",
	page:     views.PageBreaches,
	title:    "Data breaches",
	heading:  "Data breach management",
	openForm: "Report a breach",
	empty:    "No breaches registered",
	messages: map[records.ErrorKind]string{
		records.LoadFailed:   "Failed to load breaches",
		records.CreateFailed: "Failed to add the breach",
		records.DeleteFailed: "Failed to delete the breach",
	},
	prompt: breach.DeletePrompt,
	fields: breach.FormFields,
	view:   func(v *Views) *BreachView { return v.Breaches },
	render: breachPage,
	table:  breachTable,
}

var requestKind = kind[privacyreq.PrivacyRequest, privacyreq.Draft, privacyreq.CreatePayload]{
	name:     "requests",
	page:     views.PageRequests,
	title:    "Privacy requests",
	heading:  "Privacy request management",
	openForm: "Create a new request",
	empty:    "No requests created",
	messages: map[records.ErrorKind]string{
		records.LoadFailed:   "Failed to load requests",
		records.CreateFailed: "Failed to create the request",
		records.DeleteFailed: "Failed to delete the request",
	},
	prompt: privacyreq.DeletePrompt,
	fields: privacyreq.FormFields,
	view:   func(v *Views) *RequestView { return v.Requests },
	render: requestPage,
	table:  requestTable,
}

// recordPath is the link to one record under base, with the id escaped as a
// single path segment.
func recordPath(base, id string) string {
	return base + "/" + url.PathEscape(id)
}

func breachPage(list views.ListPage, items []breach.DataBreach, draft breach.Draft) any {
	cards := make([]views.BreachCard, 0, len(items))
	for _, b := range items {
		cards = append(cards, views.BreachCard{
			ID:            b.RecordID(),
			DeletePath:    recordPath(list.BasePath, b.RecordID()) + "/delete",
			DetailPath:    recordPath(list.BasePath, b.RecordID()),
			TypeLabel:     records.LabelFor(breach.Types, b.Type),
			SeverityLabel: records.LabelFor(breach.Severities, b.Severity),
			SeverityClass: breach.SeverityClass(b.Severity),
			AffectedUsers: b.AffectedUsers,
			DateDetected:  b.DateDetected,
			Status:        b.Status,
		})
	}
	return views.BreachesPage{
		ListPage: list,
		Form: views.BreachForm{
			Type:          draft.Type,
			Severity:      draft.Severity,
			Description:   draft.Description,
			AffectedUsers: draft.AffectedUsers,
		},
		Types:      breach.Types,
		Severities: breach.Severities,
		Cards:      cards,
	}
}

func requestPage(list views.ListPage, items []privacyreq.PrivacyRequest, draft privacyreq.Draft) any {
	cards := make([]views.RequestCard, 0, len(items))
	for _, p := range items {
		cards = append(cards, views.RequestCard{
			ID:         p.RecordID(),
			DeletePath: recordPath(list.BasePath, p.RecordID()) + "/delete",
			DetailPath: recordPath(list.BasePath, p.RecordID()),
			UserName:   p.UserName,
			TypeLabel:  records.LabelFor(privacyreq.Types, p.RequestType),
			Status:     p.Status,
			Date:       p.Date,
		})
	}
	return views.RequestsPage{
		ListPage: list,
		Form: views.RequestForm{
			RequestType: draft.RequestType,
			UserName:    draft.UserName,
			Email:       draft.Email,
			Description: draft.Description,
		},
		Types:         privacyreq.Types,
		MinNameLength: privacyreq.UserNameMinLength,
		Cards:         cards,
	}
}

func breachTable(items []breach.DataBreach) report.Table {
	rows := make([][]string, 0, len(items))
	for _, b := range items {
		rows = append(rows, []string{
			b.RecordID(),
			records.LabelFor(breach.Types, b.Type),
			records.LabelFor(breach.Severities, b.Severity),
			strconv.Itoa(b.AffectedUsers),
			b.DateDetected,
			b.Status,
			b.Description,
		})
	}
	return report.Table{
		Title: "Data breach register",
		Columns: []report.Column{
			{Header: "ID", Width: 20},
			{Header: "Type", Width: 45},
			{Header: "Severity", Width: 25},
			{Header: "Affected users", Width: 30},
			{Header: "Detected", Width: 28},
			{Header: "Status", Width: 40},
			{Header: "Description", Width: 89},
		},
		Rows:  rows,
		Empty: "No breaches registered",
	}
}

func requestTable(items []privacyreq.PrivacyRequest) report.Table {
	rows := make([][]string, 0, len(items))
	for _, p := range items {
		rows = append(rows, []string{
			p.RecordID(),
			p.UserName,
			p.Email,
			records.LabelFor(privacyreq.Types, p.RequestType),
			p.Status,
			p.Date,
			p.Description,
		})
	}
	return report.Table{
		Title: "Privacy request register",
		Columns: []report.Column{
			{Header: "ID", Width: 20},
			{Header: "User", Width: 45},
			{Header: "Email", Width: 55},
			{Header: "Type", Width: 35},
			{Header: "Status", Width: 30},
			{Header: "Date", Width: 28},
			{Header: "Description", Width: 64},
		},
		Rows:  rows,
		Empty: "No requests created",
	}
}
