package engine

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/ukydev/fleet-maintenance/internal/models"
)

// PaymentResult is the response of a successful payment call.
type PaymentResult struct {
	Message   string             `json:"message"`
	ServiceID primitive.ObjectID `json:"serviceId"`
	HistoryID primitive.ObjectID `json:"historyId"`
}

// AddServicePayment finalizes a payment on a service: appends an immutable
// History record, overwrites the service's payment sub-record, and rolls the
// summary onto the vehicle's maintenance history. The three writes run in
// one transaction so a failure cannot leave the entities mismatched.
// Repeating the call appends another History record and overwrites the
// service payment with the latest values.
func (e *Engine) AddServicePayment(ctx context.Context, serviceID, paymentStatus string, cost float64) (*PaymentResult, error) {
	if serviceID == "" {
		return nil, &ValidationError{Message: "serviceId is required"}
	}
	if _, err := primitive.ObjectIDFromHex(serviceID); err != nil {
		return nil, &ValidationError{Message: "serviceId must be a valid ID"}
	}
	if paymentStatus != models.PaymentPaid && paymentStatus != models.PaymentUnpaid {
		return nil, &ValidationError{Message: `paymentStatus must be either "Paid" or "Unpaid"`}
	}
	if cost < 0 {
		return nil, &ValidationError{Message: "Cost cannot be negative"}
	}

	svc, err := e.Services.FindServiceByID(ctx, serviceID)
	if err != nil {
		return nil, &NotFoundError{Message: "Corresponding service schedule not found."}
	}

	var historyID primitive.ObjectID
	err = e.runInTxn(ctx, func(txCtx context.Context) error {
		var err error
		historyID, err = e.Histories.InsertHistory(txCtx, models.History{
			ServiceID:     svc.ID,
			PaymentStatus: paymentStatus,
			Cost:          cost,
		})
		if err != nil {
			return fmt.Errorf("insert history: %w", err)
		}

		payment := models.Payment{
			PaymentStatus: paymentStatus,
			Cost:          cost,
			HistoryID:     &historyID,
		}
		if err := e.Services.SetPayment(txCtx, svc.ID, payment); err != nil {
			return fmt.Errorf("set payment: %w", err)
		}

		now := time.Now()
		detail := models.ServiceDetail{
			ServiceID:     svc.ID,
			ServiceType:   svc.ServiceType,
			PaymentStatus: paymentStatus,
			Cost:          cost,
			Date:          now,
		}
		if err := e.Vehicles.AppendServiceDetail(txCtx, svc.VehicleVIN, detail, now); err != nil {
			return fmt.Errorf("append service detail: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &PaymentResult{
		Message:   "Payment status updated",
		ServiceID: svc.ID,
		HistoryID: historyID,
	}, nil
}

// ListHistories returns every payment event on record.
func (e *Engine) ListHistories(ctx context.Context) ([]models.History, error) {
	histories, err := e.Histories.FindHistories(ctx)
	if err != nil {
		return nil, fmt.Errorf("find histories: %w", err)
	}
	if histories == nil {
		histories = []models.History{}
	}
	return histories, nil
}
