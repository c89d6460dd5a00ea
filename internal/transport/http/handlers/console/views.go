package console

import (
	"context"
	"log/slog"
	"time"

	"pdpconsole/internal/domain/audit"
	"pdpconsole/internal/domain/breach"
	"pdpconsole/internal/domain/privacyreq"
	"pdpconsole/internal/domain/records"
	"pdpconsole/internal/requestctx"
)

const (
	EntityBreach  = "data_breach"
	EntityRequest = "privacy_request"
)

type (
	BreachView     = records.View[breach.DataBreach, breach.Draft, breach.CreatePayload]
	RequestView    = records.View[privacyreq.PrivacyRequest, privacyreq.Draft, privacyreq.CreatePayload]
	BreachGateway  = records.Gateway[breach.DataBreach, breach.CreatePayload]
	RequestGateway = records.Gateway[privacyreq.PrivacyRequest, privacyreq.CreatePayload]
)

// Views is the pair of view instances owned by one browser session.
type Views struct {
	Breaches *BreachView
	Requests *RequestView
}

type Deps struct {
	Breaches BreachGateway
	Requests RequestGateway
	Audit    audit.Recorder
	Logger   *slog.Logger
	Now      func() time.Time
}

// NewViews returns the factory the session store calls for every new session
// and on teardown.
func NewViews(d Deps) func() *Views {
	if d.Audit == nil {
		d.Audit = audit.Noop{}
	}
	if d.Logger == nil {
		d.Logger = slog.Default()
	}
	trail := auditTrail{recorder: d.Audit, logger: d.Logger}

	return func() *Views {
		return &Views{
			Breaches: records.NewView(records.Config[breach.DataBreach, breach.Draft, breach.CreatePayload]{
				Kind:         EntityBreach,
				Gateway:      d.Breaches,
				Payload:      breach.NewPayload,
				DeletePrompt: breach.DeletePrompt,
				Now:          d.Now,
				Logger:       d.Logger,
				OnCreated: func(ctx context.Context, b breach.DataBreach) {
					trail.record(ctx, audit.ActionBreachCreate, EntityBreach, b.RecordID(), b)
				},
				OnDeleted: func(ctx context.Context, id string) {
					trail.record(ctx, audit.ActionBreachDelete, EntityBreach, id, nil)
				},
			}, breach.DefaultDraft, breach.SetField),
			Requests: records.NewView(records.Config[privacyreq.PrivacyRequest, privacyreq.Draft, privacyreq.CreatePayload]{
				Kind:         EntityRequest,
				Gateway:      d.Requests,
				Payload:      privacyreq.NewPayload,
				DeletePrompt: privacyreq.DeletePrompt,
				Now:          d.Now,
				Logger:       d.Logger,
				OnCreated: func(ctx context.Context, p privacyreq.PrivacyRequest) {
					trail.record(ctx, audit.ActionRequestCreate, EntityRequest, p.RecordID(), p)
				},
				OnDeleted: func(ctx context.Context, id string) {
					trail.record(ctx, audit.ActionRequestDelete, EntityRequest, id, nil)
				},
			}, privacyreq.DefaultDraft, privacyreq.SetField),
		}
	}
}

type auditTrail struct {
	recorder audit.Recorder
	logger   *slog.Logger
}

// record never fails the operation that triggered it.
func (a auditTrail) record(ctx context.Context, action, entityType, entityID string, after any) {
	err := a.recorder.Record(ctx, audit.Entry{
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		RequestID:  requestctx.GetRequestID(ctx),
		IP:         requestctx.GetClientIP(ctx),
		After:      after,
	})
	if err != nil {
		a.logger.Warn("audit record failed", "action", action, "entityId", entityID, "err", err)
	}
}
