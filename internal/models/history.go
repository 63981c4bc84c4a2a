package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// History is an append-only record of one payment event on a service.
// Records are created exactly once per successful payment call and never
// modified afterwards.
type History struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ServiceID     primitive.ObjectID `bson:"service_id" json:"serviceId"`
	PaymentStatus string             `bson:"payment_status" json:"paymentStatus"`
	Cost          float64            `bson:"cost" json:"cost"`
	CreatedAt     time.Time          `bson:"created_at" json:"created_at"`
}
