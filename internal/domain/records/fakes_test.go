package records

import (
	"context"
	"errors"
	"time"
)

type item struct {
	ID       string
	Severity string
	Status   string
	Date     string
	Count    int
}

func (i item) RecordID() string { return i.ID }

type draft struct {
	Severity string
	Count    int
}

type payload struct {
	Severity string
	Count    int
	Status   string
	Date     string
}

func buildPayload(d draft, now time.Time) payload {
	return payload{Severity: d.Severity, Count: d.Count, Status: "under investigation", Date: now.UTC().Format("2006-01-02")}
}

var errBoom = errors.New("boom")

type fakeGateway struct {
	listItems  []item
	listErr    error
	created    item
	createErr  error
	deleteErr  error
	payloads   []payload
	deletedIDs []string
	calls      int
}

func (g *fakeGateway) List(context.Context) ([]item, error) {
	g.calls++
	if g.listErr != nil {
		return nil, g.listErr
	}
	return g.listItems, nil
}

func (g *fakeGateway) Create(_ context.Context, p payload) (item, error) {
	g.calls++
	g.payloads = append(g.payloads, p)
	if g.createErr != nil {
		return item{}, g.createErr
	}
	return g.created, nil
}

func (g *fakeGateway) Delete(_ context.Context, id string) error {
	g.calls++
	g.deletedIDs = append(g.deletedIDs, id)
	return g.deleteErr
}

func fixedNow() time.Time {
	return time.Date(2024, 1, 1, 10, 30, 0, 0, time.UTC)
}

func newTestController(g *fakeGateway) *Controller[item, draft, payload] {
	return NewController(Config[item, draft, payload]{
		Kind:         "test",
		Gateway:      g,
		Payload:      buildPayload,
		DeletePrompt: "delete?",
		Now:          fixedNow,
	})
}

func setDraftField(d *draft, name, raw string) error {
	switch name {
	case "severity":
		d.Severity = raw
	case "count":
		n := 0
		for _, r := range raw {
			if r < '0' || r > '9' {
				n = 0
				break
			}
			n = n*10 + int(r-'0')
		}
		d.Count = n
	default:
		return ErrUnknownField
	}
	return nil
}

func defaultDraft() draft {
	return draft{Severity: "medium"}
}

func always(answer bool) Confirmer {
	return ConfirmFunc(func(string) bool { return answer })
}
