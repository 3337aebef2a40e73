package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/optigov/ndpr-portal/internal/core/domain"
)

const auditCollection = "auth_audit"

// AuditSink persists authentication activity records to Mongo.
type AuditSink struct {
	coll *mongo.Collection
}

func NewAuditSink(db *mongo.Database) *AuditSink {
	return &AuditSink{coll: db.Collection(auditCollection)}
}

type auditDoc struct {
	Actor   string `bson:"actor"`
	Role    string `bson:"role"`
	Action  string `bson:"action"`
	Outcome string `bson:"outcome"`
	Reason  string `bson:"reason,omitempty"`
	At      int64  `bson:"at"`
}

func (s *AuditSink) Record(ctx context.Context, event domain.AuditEvent) error {
	doc := auditDoc{
		Actor:   event.Actor,
		Role:    event.Role.String(),
		Action:  event.Action,
		Outcome: event.Outcome,
		Reason:  event.Reason,
		At:      event.At.Unix(),
	}
	if _, err := s.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("audit record: %w", err)
	}
	return nil
}
