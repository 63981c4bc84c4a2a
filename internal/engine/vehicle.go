package engine

import (
	"context"
	"fmt"

	"github.com/ukydev/fleet-maintenance/internal/models"
)

// ListVehicles returns the supported-brand/type fleet, each vehicle enriched
// with a flag marking any service that is not fully finished-and-paid.
func (e *Engine) ListVehicles(ctx context.Context) ([]models.EnrichedVehicle, error) {
	vehicles, err := e.Vehicles.FindSupportedVehicles(ctx)
	if err != nil {
		return nil, fmt.Errorf("find vehicles: %w", err)
	}
	if len(vehicles) == 0 {
		return nil, &NotFoundError{
			Message: "No Vehicles Available for supported brands/types of vehicles",
		}
	}

	out := make([]models.EnrichedVehicle, 0, len(vehicles))
	for _, v := range vehicles {
		services, err := e.Services.FindByVIN(ctx, v.VIN)
		if err != nil {
			return nil, fmt.Errorf("find services for %s: %w", v.VIN, err)
		}

		open := false
		for _, svc := range services {
			if svc.Status != models.StatusCompleted || svc.Payment.PaymentStatus == models.PaymentUnpaid {
				open = true
				break
			}
		}
		out = append(out, models.EnrichedVehicle{Vehicle: v, HasOpenUnpaidService: open})
	}
	return out, nil
}
