package repository

import (
	"context"

	"farewatch-service/internal/domain/entity"
)

// PriceRepository defines the interface for flight price search operations
type PriceRepository interface {
	// SearchPrices returns direct one-way offers for the configured route on
	// the given departure date (YYYY-MM-DD), in the order the API returned them.
	SearchPrices(ctx context.Context, departureDate string) ([]entity.Offer, error)
}
