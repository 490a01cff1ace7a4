package queries

import (
	"context"
	"errors"
	"strings"
	"time"

	"workorders/internal/core/application/auditlog"
	"workorders/internal/core/domain/model/audit"
	"workorders/internal/core/ports"
	"workorders/internal/pkg/errs"
	"workorders/internal/pkg/guard"
)

var (
	ErrListAuditEventsQueryIsNotConstructed = errors.New(
		"ListAuditEventsQuery must be created via NewListAuditEventsQuery constructor",
	)
	ErrGetAuditEventQueryIsNotConstructed = errors.New(
		"GetAuditEventQuery must be created via NewGetAuditEventQuery constructor",
	)
	ErrGetAuditHistoryQueryIsNotConstructed = errors.New(
		"GetAuditHistoryQuery must be created via NewGetAuditHistoryQuery constructor",
	)
	ErrGetAuditEventsByUserQueryIsNotConstructed = errors.New(
		"GetAuditEventsByUserQuery must be created via NewGetAuditEventsByUserQuery constructor",
	)
	ErrGetAuditEventsByDateRangeQueryIsNotConstructed = errors.New(
		"GetAuditEventsByDateRangeQuery must be created via NewGetAuditEventsByDateRangeQuery constructor",
	)
)

// AuditFilterInput is the raw filter of the audit list and export endpoints.
// Empty strings and nil times match everything.
type AuditFilterInput struct {
	EntityType  string
	EntityID    string
	Action      string
	ActorUserID string
	From        *time.Time
	To          *time.Time
	Limit       int
	Offset      int
}

// ListAuditEventsQuery pages through the trail, newest first.
//
// Example:
//
//	query, err := NewListAuditEventsQuery(AuditFilterInput{EntityType: "WorkOrder", Limit: 20})
//	page, err := handler.Handle(ctx, query)
//	// page.Total counts every match, page.Items holds at most 20
type ListAuditEventsQuery struct {
	filter audit.Filter
	guard  guard.ConstructorGuard
}

func NewListAuditEventsQuery(in AuditFilterInput) (ListAuditEventsQuery, error) {
	filter, err := toFilter(in)
	if err != nil {
		return ListAuditEventsQuery{}, err
	}
	return ListAuditEventsQuery{filter: filter, guard: guard.NewConstructorGuard()}, nil
}

func toFilter(in AuditFilterInput) (audit.Filter, error) {
	if in.From != nil && in.To != nil && in.To.Before(*in.From) {
		return audit.Filter{}, errs.NewValueIsInvalidErrorWithCause("to", errors.New("to is before from"))
	}
	return audit.Filter{
		EntityType:  strings.TrimSpace(in.EntityType),
		EntityID:    strings.TrimSpace(in.EntityID),
		Action:      audit.Action(strings.TrimSpace(in.Action)),
		ActorUserID: strings.TrimSpace(in.ActorUserID),
		From:        in.From,
		To:          in.To,
		Limit:       in.Limit,
		Offset:      in.Offset,
	}, nil
}

func (q ListAuditEventsQuery) Validate() error {
	return q.guard.Validate(ErrListAuditEventsQueryIsNotConstructed)
}

func (q ListAuditEventsQuery) Filter() audit.Filter {
	return q.filter
}

type ListAuditEventsQueryHandler struct {
	reader AuditReader
}

func NewListAuditEventsQueryHandler(reader AuditReader) ListAuditEventsQueryHandler {
	return ListAuditEventsQueryHandler{reader: reader}
}

func (h ListAuditEventsQueryHandler) Handle(ctx context.Context, query ListAuditEventsQuery) (auditlog.Page, error) {
	if err := query.Validate(); err != nil {
		return auditlog.Page{}, err
	}
	return h.reader.List(ctx, query.Filter())
}

// ExportAuditEventsQueryHandler renders every event matching a list query,
// ignoring its paging.
type ExportAuditEventsQueryHandler struct {
	reader   AuditReader
	exporter ports.AuditExporter
}

func NewExportAuditEventsQueryHandler(reader AuditReader, exporter ports.AuditExporter) ExportAuditEventsQueryHandler {
	return ExportAuditEventsQueryHandler{reader: reader, exporter: exporter}
}

func (h ExportAuditEventsQueryHandler) ContentType() string {
	return h.exporter.ContentType()
}

func (h ExportAuditEventsQueryHandler) FileExtension() string {
	return h.exporter.FileExtension()
}

func (h ExportAuditEventsQueryHandler) Handle(ctx context.Context, query ListAuditEventsQuery) ([]byte, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}
	return h.reader.Export(ctx, h.exporter, query.Filter())
}

type GetAuditEventQuery struct {
	id    string
	guard guard.ConstructorGuard
}

func NewGetAuditEventQuery(id string) (GetAuditEventQuery, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return GetAuditEventQuery{}, errs.NewValueIsRequiredError("auditId")
	}
	return GetAuditEventQuery{id: id, guard: guard.NewConstructorGuard()}, nil
}

func (q GetAuditEventQuery) Validate() error {
	return q.guard.Validate(ErrGetAuditEventQueryIsNotConstructed)
}

func (q GetAuditEventQuery) ID() string {
	return q.id
}

type GetAuditEventQueryHandler struct {
	reader AuditReader
}

func NewGetAuditEventQueryHandler(reader AuditReader) GetAuditEventQueryHandler {
	return GetAuditEventQueryHandler{reader: reader}
}

func (h GetAuditEventQueryHandler) Handle(ctx context.Context, query GetAuditEventQuery) (*audit.Event, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}
	return h.reader.GetByID(ctx, query.ID())
}

// GetAuditHistoryQuery selects every event of one entity.
type GetAuditHistoryQuery struct {
	entityType string
	entityID   string
	guard      guard.ConstructorGuard
}

func NewGetAuditHistoryQuery(entityType, entityID string) (GetAuditHistoryQuery, error) {
	q := GetAuditHistoryQuery{
		entityType: strings.TrimSpace(entityType),
		entityID:   strings.TrimSpace(entityID),
		guard:      guard.NewConstructorGuard(),
	}

	var errList []error
	if q.entityType == "" {
		errList = append(errList, errs.NewValueIsRequiredError("entityType"))
	}
	if q.entityID == "" {
		errList = append(errList, errs.NewValueIsRequiredError("entityId"))
	}
	if err := errors.Join(errList...); err != nil {
		return GetAuditHistoryQuery{}, err
	}
	return q, nil
}

func (q GetAuditHistoryQuery) Validate() error {
	return q.guard.Validate(ErrGetAuditHistoryQueryIsNotConstructed)
}

// AuditHistory is the full history of one entity, newest first.
type AuditHistory struct {
	Events []*audit.Event
	Total  int
}

type GetAuditHistoryQueryHandler struct {
	reader AuditReader
}

func NewGetAuditHistoryQueryHandler(reader AuditReader) GetAuditHistoryQueryHandler {
	return GetAuditHistoryQueryHandler{reader: reader}
}

func (h GetAuditHistoryQueryHandler) Handle(ctx context.Context, query GetAuditHistoryQuery) (AuditHistory, error) {
	if err := query.Validate(); err != nil {
		return AuditHistory{}, err
	}
	events, total, err := h.reader.GetHistory(ctx, query.entityType, query.entityID)
	if err != nil {
		return AuditHistory{}, err
	}
	if events == nil {
		events = []*audit.Event{}
	}
	return AuditHistory{Events: events, Total: total}, nil
}

// GetAuditEventsByUserQuery selects the latest events of one actor.
// A zero limit means the recorder default.
type GetAuditEventsByUserQuery struct {
	actorUserID string
	limit       int
	guard       guard.ConstructorGuard
}

func NewGetAuditEventsByUserQuery(actorUserID string, limit int) (GetAuditEventsByUserQuery, error) {
	actorUserID = strings.TrimSpace(actorUserID)
	if actorUserID == "" {
		return GetAuditEventsByUserQuery{}, errs.NewValueIsRequiredError("userId")
	}
	return GetAuditEventsByUserQuery{actorUserID: actorUserID, limit: limit, guard: guard.NewConstructorGuard()}, nil
}

func (q GetAuditEventsByUserQuery) Validate() error {
	return q.guard.Validate(ErrGetAuditEventsByUserQueryIsNotConstructed)
}

type GetAuditEventsByUserQueryHandler struct {
	reader AuditReader
}

func NewGetAuditEventsByUserQueryHandler(reader AuditReader) GetAuditEventsByUserQueryHandler {
	return GetAuditEventsByUserQueryHandler{reader: reader}
}

func (h GetAuditEventsByUserQueryHandler) Handle(ctx context.Context, query GetAuditEventsByUserQuery) ([]*audit.Event, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}
	events, err := h.reader.GetByUser(ctx, query.actorUserID, query.limit)
	if err != nil {
		return nil, err
	}
	if events == nil {
		events = []*audit.Event{}
	}
	return events, nil
}

// GetAuditEventsByDateRangeQuery selects events with from <= at <= to.
type GetAuditEventsByDateRangeQuery struct {
	from  time.Time
	to    time.Time
	guard guard.ConstructorGuard
}

func NewGetAuditEventsByDateRangeQuery(from, to time.Time) (GetAuditEventsByDateRangeQuery, error) {
	if to.Before(from) {
		return GetAuditEventsByDateRangeQuery{}, errs.NewValueIsInvalidErrorWithCause("to", errors.New("to is before from"))
	}
	return GetAuditEventsByDateRangeQuery{from: from, to: to, guard: guard.NewConstructorGuard()}, nil
}

func (q GetAuditEventsByDateRangeQuery) Validate() error {
	return q.guard.Validate(ErrGetAuditEventsByDateRangeQueryIsNotConstructed)
}

type GetAuditEventsByDateRangeQueryHandler struct {
	reader AuditReader
}

func NewGetAuditEventsByDateRangeQueryHandler(reader AuditReader) GetAuditEventsByDateRangeQueryHandler {
	return GetAuditEventsByDateRangeQueryHandler{reader: reader}
}

func (h GetAuditEventsByDateRangeQueryHandler) Handle(ctx context.Context, query GetAuditEventsByDateRangeQuery) ([]*audit.Event, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}
	return h.reader.GetByDateRange(ctx, query.from, query.to)
}
