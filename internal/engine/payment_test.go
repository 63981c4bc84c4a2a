package engine

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/ukydev/fleet-maintenance/internal/models"
)

func TestEngine_AddServicePayment(t *testing.T) {
	ctx := context.Background()

	t.Run("missing service id", func(t *testing.T) {
		e := newTestEngine(new(MockTechnicianCollection), new(MockVehicleCollection), new(MockServiceCollection), new(MockHistoryCollection))

		_, err := e.AddServicePayment(ctx, "", models.PaymentPaid, 100)

		var verr *ValidationError
		assert.ErrorAs(t, err, &verr)
		assert.Equal(t, "serviceId is required", verr.Message)
	})

	t.Run("malformed service id", func(t *testing.T) {
		e := newTestEngine(new(MockTechnicianCollection), new(MockVehicleCollection), new(MockServiceCollection), new(MockHistoryCollection))

		_, err := e.AddServicePayment(ctx, "not-an-id", models.PaymentPaid, 100)

		var verr *ValidationError
		assert.ErrorAs(t, err, &verr)
		assert.Equal(t, "serviceId must be a valid ID", verr.Message)
	})

	t.Run("invalid payment status", func(t *testing.T) {
		e := newTestEngine(new(MockTechnicianCollection), new(MockVehicleCollection), new(MockServiceCollection), new(MockHistoryCollection))

		_, err := e.AddServicePayment(ctx, primitive.NewObjectID().Hex(), "Pending", 100)

		var verr *ValidationError
		assert.ErrorAs(t, err, &verr)
		assert.Equal(t, `paymentStatus must be either "Paid" or "Unpaid"`, verr.Message)
	})

	t.Run("negative cost", func(t *testing.T) {
		e := newTestEngine(new(MockTechnicianCollection), new(MockVehicleCollection), new(MockServiceCollection), new(MockHistoryCollection))

		_, err := e.AddServicePayment(ctx, primitive.NewObjectID().Hex(), models.PaymentPaid, -5)

		var verr *ValidationError
		assert.ErrorAs(t, err, &verr)
		assert.Equal(t, "Cost cannot be negative", verr.Message)
	})

	t.Run("unknown service", func(t *testing.T) {
		services := new(MockServiceCollection)
		svcID := primitive.NewObjectID()
		services.On("FindServiceByID", mock.Anything, svcID.Hex()).Return(nil, assert.AnError)
		e := newTestEngine(new(MockTechnicianCollection), new(MockVehicleCollection), services, new(MockHistoryCollection))

		_, err := e.AddServicePayment(ctx, svcID.Hex(), models.PaymentPaid, 100)

		var nferr *NotFoundError
		assert.ErrorAs(t, err, &nferr)
		assert.Equal(t, "Corresponding service schedule not found.", nferr.Message)
	})

	t.Run("payment writes history, service, and vehicle detail", func(t *testing.T) {
		services := new(MockServiceCollection)
		vehicles := new(MockVehicleCollection)
		histories := new(MockHistoryCollection)
		svcID := primitive.NewObjectID()
		histID := primitive.NewObjectID()

		services.On("FindServiceByID", mock.Anything, svcID.Hex()).
			Return(&models.Service{
				ID:          svcID,
				VehicleVIN:  "ABC123XYZ",
				ServiceType: "Oil Change",
				Status:      models.StatusCompleted,
			}, nil)
		histories.On("InsertHistory", mock.Anything, mock.MatchedBy(func(h models.History) bool {
			return h.ServiceID == svcID && h.PaymentStatus == models.PaymentPaid && h.Cost == 150
		})).Return(histID, nil)
		services.On("SetPayment", mock.Anything, svcID, models.Payment{
			PaymentStatus: models.PaymentPaid,
			Cost:          150,
			HistoryID:     &histID,
		}).Return(nil)
		vehicles.On("AppendServiceDetail", mock.Anything, "ABC123XYZ",
			mock.MatchedBy(func(d models.ServiceDetail) bool {
				return d.ServiceID == svcID && d.ServiceType == "Oil Change" &&
					d.PaymentStatus == models.PaymentPaid && d.Cost == 150
			}), mock.AnythingOfType("time.Time")).Return(nil)

		e := newTestEngine(new(MockTechnicianCollection), vehicles, services, histories)

		res, err := e.AddServicePayment(ctx, svcID.Hex(), models.PaymentPaid, 150)

		assert.NoError(t, err)
		assert.Equal(t, "Payment status updated", res.Message)
		assert.Equal(t, svcID, res.ServiceID)
		assert.Equal(t, histID, res.HistoryID)
		services.AssertExpectations(t)
		vehicles.AssertExpectations(t)
		histories.AssertExpectations(t)
	})

	t.Run("history insert failure aborts the write", func(t *testing.T) {
		services := new(MockServiceCollection)
		vehicles := new(MockVehicleCollection)
		histories := new(MockHistoryCollection)
		svcID := primitive.NewObjectID()

		services.On("FindServiceByID", mock.Anything, svcID.Hex()).
			Return(&models.Service{ID: svcID, VehicleVIN: "ABC123XYZ"}, nil)
		histories.On("InsertHistory", mock.Anything, mock.AnythingOfType("models.History")).
			Return(primitive.NilObjectID, assert.AnError)

		e := newTestEngine(new(MockTechnicianCollection), vehicles, services, histories)

		_, err := e.AddServicePayment(ctx, svcID.Hex(), models.PaymentUnpaid, 0)

		assert.Error(t, err)
		services.AssertNotCalled(t, "SetPayment", mock.Anything, mock.Anything, mock.Anything)
		vehicles.AssertNotCalled(t, "AppendServiceDetail", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestEngine_ListHistories(t *testing.T) {
	ctx := context.Background()

	t.Run("returns the ledger", func(t *testing.T) {
		histories := new(MockHistoryCollection)
		histories.On("FindHistories", mock.Anything).
			Return([]models.History{{PaymentStatus: models.PaymentPaid, Cost: 99}}, nil)
		e := newTestEngine(new(MockTechnicianCollection), new(MockVehicleCollection), new(MockServiceCollection), histories)

		out, err := e.ListHistories(ctx)

		assert.NoError(t, err)
		assert.Len(t, out, 1)
	})

	t.Run("empty ledger is a list, not nil", func(t *testing.T) {
		histories := new(MockHistoryCollection)
		histories.On("FindHistories", mock.Anything).Return([]models.History(nil), nil)
		e := newTestEngine(new(MockTechnicianCollection), new(MockVehicleCollection), new(MockServiceCollection), histories)

		out, err := e.ListHistories(ctx)

		assert.NoError(t, err)
		assert.NotNil(t, out)
		assert.Empty(t, out)
	})
}
