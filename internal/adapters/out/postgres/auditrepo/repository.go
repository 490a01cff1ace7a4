// Package auditrepo stores the append-only audit trail.
package auditrepo

import (
	"context"
	"errors"
	"time"

	"workorders/internal/core/domain/model/audit"
	"workorders/internal/pkg/errs"

	sq "github.com/Masterminds/squirrel"
	"gorm.io/gorm"
)

const tableName = "audit_events"

type EventDTO struct {
	ID            string    `gorm:"primaryKey"`
	At            time.Time `gorm:"not null;index"`
	ActorUserID   string    `gorm:"index"`
	Action        string    `gorm:"not null;index"`
	EntityType    string    `gorm:"not null"`
	EntityID      string    `gorm:"not null"`
	Before        *string   `gorm:"type:jsonb"`
	After         *string   `gorm:"type:jsonb"`
	CorrelationID string
}

func (EventDTO) TableName() string {
	return tableName
}

func fromDomain(e *audit.Event) (EventDTO, error) {
	before, err := audit.MarshalSnapshot(e.Before)
	if err != nil {
		return EventDTO{}, err
	}
	after, err := audit.MarshalSnapshot(e.After)
	if err != nil {
		return EventDTO{}, err
	}
	return EventDTO{
		ID:            e.ID,
		At:            e.At.UTC(),
		ActorUserID:   e.ActorUserID,
		Action:        e.Action.String(),
		EntityType:    e.EntityType,
		EntityID:      e.EntityID,
		Before:        before,
		After:         after,
		CorrelationID: e.CorrelationID,
	}, nil
}

func toDomain(dto EventDTO) (*audit.Event, error) {
	before, err := audit.UnmarshalSnapshot(dto.Before)
	if err != nil {
		return nil, err
	}
	after, err := audit.UnmarshalSnapshot(dto.After)
	if err != nil {
		return nil, err
	}
	return &audit.Event{
		ID:            dto.ID,
		At:            dto.At.UTC(),
		ActorUserID:   dto.ActorUserID,
		Action:        audit.Action(dto.Action),
		EntityType:    dto.EntityType,
		EntityID:      dto.EntityID,
		Before:        before,
		After:         after,
		CorrelationID: dto.CorrelationID,
	}, nil
}

// GormAuditRepository implements ports.AuditRepository. Filtered reads are
// built with squirrel and executed through the GORM connection so they join
// the surrounding transaction.
type GormAuditRepository struct {
	db *gorm.DB
	qb sq.StatementBuilderType
}

func NewGormAuditRepository(db *gorm.DB) *GormAuditRepository {
	return &GormAuditRepository{
		db: db,
		qb: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func (r *GormAuditRepository) Append(ctx context.Context, event *audit.Event) error {
	if event == nil || event.ID == "" {
		return errs.NewValueIsRequiredError("auditId")
	}

	dto, err := fromDomain(event)
	if err != nil {
		return err
	}
	if err = r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.NewValueIsInvalidErrorWithCause("auditId", err)
		}
		return err
	}
	return nil
}

func (r *GormAuditRepository) Get(ctx context.Context, id string) (*audit.Event, error) {
	var dto EventDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("auditEvent", id)
		}
		return nil, err
	}
	return toDomain(dto)
}

// Find returns the page of matching events, newest first, and the number of
// matches before paging. A zero limit returns every match after offset.
func (r *GormAuditRepository) Find(ctx context.Context, filter audit.Filter) ([]*audit.Event, int, error) {
	where := conditions(filter)

	countSQL, countArgs, err := r.qb.Select("COUNT(*)").From(tableName).Where(where).ToSql()
	if err != nil {
		return nil, 0, err
	}
	var total int64
	if err = r.db.WithContext(ctx).Raw(countSQL, countArgs...).Scan(&total).Error; err != nil {
		return nil, 0, err
	}

	query := r.qb.Select("*").From(tableName).Where(where).OrderBy("at DESC", "id DESC")
	if filter.Offset > 0 {
		query = query.Offset(uint64(filter.Offset))
	}
	if filter.Limit > 0 {
		query = query.Limit(uint64(filter.Limit))
	}
	pageSQL, pageArgs, err := query.ToSql()
	if err != nil {
		return nil, 0, err
	}

	var dtos []EventDTO
	if err = r.db.WithContext(ctx).Raw(pageSQL, pageArgs...).Scan(&dtos).Error; err != nil {
		return nil, 0, err
	}

	events := make([]*audit.Event, 0, len(dtos))
	for _, dto := range dtos {
		e, err := toDomain(dto)
		if err != nil {
			return nil, 0, err
		}
		events = append(events, e)
	}
	return events, int(total), nil
}

func (r *GormAuditRepository) Count(ctx context.Context) (int, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&EventDTO{}).Count(&n).Error; err != nil {
		return 0, err
	}
	return int(n), nil
}

func conditions(f audit.Filter) sq.And {
	where := sq.And{}
	if f.EntityType != "" {
		where = append(where, sq.Eq{"entity_type": f.EntityType})
	}
	if f.EntityID != "" {
		where = append(where, sq.Eq{"entity_id": f.EntityID})
	}
	if f.Action != "" {
		where = append(where, sq.Eq{"action": f.Action.String()})
	}
	if f.ActorUserID != "" {
		where = append(where, sq.Eq{"actor_user_id": f.ActorUserID})
	}
	if f.From != nil {
		where = append(where, sq.GtOrEq{"at": f.From.UTC()})
	}
	if f.To != nil {
		where = append(where, sq.LtOrEq{"at": f.To.UTC()})
	}
	return where
}
