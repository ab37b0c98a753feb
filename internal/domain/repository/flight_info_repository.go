package repository

import (
	"context"

	"farewatch-service/internal/domain/entity"
)

// FlightInfoRepository defines the interface for flight enrichment lookups
type FlightInfoRepository interface {
	// GetFlightInfo returns live data for a flight, or (nil, nil) when the
	// provider has no record of it.
	GetFlightInfo(ctx context.Context, airlineIATA, flightNumber string) (*entity.FlightInfo, error)
}
