package services

import (
	"context"
	"encoding/json"

	"catalog-backend/internal/apperrors"
	"catalog-backend/internal/repository"

	"github.com/sirupsen/logrus"
)

// Publisher delivers a serialized model event to the message bus.
type Publisher interface {
	Publish(ctx context.Context, routingKey string, body []byte) error
	Close() error
}

// LogPublisher only logs events. It stands in when no broker is configured.
type LogPublisher struct {
	logger *logrus.Logger
}

func NewLogPublisher(logger *logrus.Logger) *LogPublisher {
	return &LogPublisher{logger: logger}
}

func (p *LogPublisher) Publish(ctx context.Context, routingKey string, body []byte) error {
	p.logger.WithFields(logrus.Fields{
		"routingKey": routingKey,
		"size":       len(body),
	}).Debug("Model event")
	return nil
}

func (p *LogPublisher) Close() error {
	return nil
}

// ModelObserver publishes model changes on "<table>.<action>". Publication is
// best effort: failures are logged and never returned to the writer.
type ModelObserver struct {
	publisher Publisher
	logger    *logrus.Logger
}

func NewModelObserver(publisher Publisher, logger *logrus.Logger) *ModelObserver {
	return &ModelObserver{
		publisher: publisher,
		logger:    logger,
	}
}

func (o *ModelObserver) Created(ctx context.Context, model repository.Owner) {
	o.publish(ctx, model, ActionCreated)
}

func (o *ModelObserver) Updated(ctx context.Context, model repository.Owner) {
	o.publish(ctx, model, ActionUpdated)
}

func (o *ModelObserver) Deleted(ctx context.Context, model repository.Owner) {
	o.publish(ctx, model, ActionDeleted)
}

// Hook adapts the observer to the writer's post-commit hooks. Association
// rows inserted or deleted by the write are published on their own table.
func (o *ModelObserver) Hook() PostCommitHook {
	return func(ctx context.Context, commit Commit) {
		o.publish(ctx, commit.Entity, commit.Action)
		for _, pivot := range commit.Pivots {
			o.PivotChanged(ctx, pivot)
		}
	}
}

// PivotChanged publishes "<pivot table>.created" for every inserted row and
// "<pivot table>.deleted" for every deleted one.
func (o *ModelObserver) PivotChanged(ctx context.Context, result repository.SyncResult) {
	for _, id := range result.Added {
		o.send(ctx, result.Table, result.ParentID.String()+":"+id.String(), ActionCreated, result.Row(id))
	}
	for _, id := range result.Removed {
		o.send(ctx, result.Table, result.ParentID.String()+":"+id.String(), ActionDeleted, result.Row(id))
	}
}

func RoutingKey(table, action string) string {
	return table + "." + action
}

func (o *ModelObserver) publish(ctx context.Context, model repository.Owner, action string) {
	o.send(ctx, model.TableName(), model.GetID().String(), action, model)
}

func (o *ModelObserver) send(ctx context.Context, table, id, action string, payload any) {
	body, err := json.Marshal(payload)
	if err == nil {
		err = o.publisher.Publish(context.WithoutCancel(ctx), RoutingKey(table, action), body)
	}
	if err != nil {
		publishErr := &apperrors.PublishError{
			Table:  table,
			ID:     id,
			Action: action,
			Err:    err,
		}
		o.logger.WithError(publishErr).WithFields(logrus.Fields{
			"table":  table,
			"id":     id,
			"action": action,
		}).Error("Failed to publish model event")
	}
}
