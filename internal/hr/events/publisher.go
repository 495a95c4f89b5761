package events

import (
	"context"

	"github.com/hrdesk/hrdesk-backend/internal/hr/repository"
	"github.com/hrdesk/hrdesk-backend/pkg/logger"
	"github.com/hrdesk/hrdesk-backend/pkg/messaging"
)

// publisher is the slice of messaging.Publisher the HR publisher needs
type publisher interface {
	Publish(ctx context.Context, eventType string, data interface{}) error
}

// HREventPublisher publishes HR domain events. Publish failures are
// logged and swallowed; event delivery never fails a request.
type HREventPublisher struct {
	publisher publisher
	logger    *logger.Logger
}

// NewHREventPublisher creates a publisher bound to the HR events exchange
func NewHREventPublisher(rmq *messaging.RabbitMQ, log *logger.Logger) (*HREventPublisher, error) {
	pub, err := messaging.NewPublisher(rmq, messaging.ExchangeHREvents, "hr-service", log)
	if err != nil {
		return nil, err
	}

	return &HREventPublisher{
		publisher: pub,
		logger:    log,
	}, nil
}

// NewHREventPublisherWith wraps an existing publisher. Used in tests.
func NewHREventPublisherWith(pub publisher, log *logger.Logger) *HREventPublisher {
	return &HREventPublisher{
		publisher: pub,
		logger:    log,
	}
}

// PublishStatementCreated publishes a statement created event
func (p *HREventPublisher) PublishStatementCreated(ctx context.Context, st *repository.Statement) {
	data := messaging.StatementCreatedEvent{
		StatementID: st.ID,
		EmployeeID:  st.EmployeeID,
		Category:    st.Category,
	}

	if err := p.publisher.Publish(ctx, messaging.EventStatementCreated, data); err != nil {
		p.logger.Error().Err(err).Int64("statement_id", st.ID).Msg("failed to publish statement created event")
	}
}

// PublishStatementCancelled publishes a statement cancelled event
func (p *HREventPublisher) PublishStatementCancelled(ctx context.Context, st *repository.Statement, cancelledBy int64) {
	data := messaging.StatementCancelledEvent{
		StatementID: st.ID,
		EmployeeID:  st.EmployeeID,
		CancelledBy: cancelledBy,
	}

	if err := p.publisher.Publish(ctx, messaging.EventStatementCancelled, data); err != nil {
		p.logger.Error().Err(err).Int64("statement_id", st.ID).Msg("failed to publish statement cancelled event")
	}
}

// PublishAccessDenied publishes an access denied event
func (p *HREventPublisher) PublishAccessDenied(ctx context.Context, actorID int64, permission string, targetID, teamID int64) {
	data := messaging.AccessDeniedEvent{
		ActorID:    actorID,
		Permission: permission,
		TargetID:   targetID,
		TeamID:     teamID,
	}

	if err := p.publisher.Publish(ctx, messaging.EventAccessDenied, data); err != nil {
		p.logger.Error().Err(err).Int64("actor_id", actorID).Msg("failed to publish access denied event")
	}
}
