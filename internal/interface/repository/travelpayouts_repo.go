package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"farewatch-service/internal/domain/entity"
	"farewatch-service/internal/infrastructure/config"
	"farewatch-service/pkg/logger"
)

// TravelpayoutsRepository searches flight prices via the Travelpayouts API
type TravelpayoutsRepository struct {
	logger      logger.Logger
	baseURL     string
	token       string
	origin      string
	destination string
	currency    string
	limit       int
	client      *http.Client
}

// NewTravelpayoutsRepository creates a new Travelpayouts price repository
func NewTravelpayoutsRepository(cfg *config.Config, logger logger.Logger) *TravelpayoutsRepository {
	return &TravelpayoutsRepository{
		logger:      logger,
		baseURL:     cfg.TravelpayoutsBaseURL,
		token:       cfg.TravelpayoutsAPIKey,
		origin:      cfg.Origin,
		destination: cfg.Destination,
		currency:    cfg.Currency,
		limit:       cfg.SearchLimit,
		client:      &http.Client{Timeout: 30 * time.Second},
	}
}

type pricesForDatesResponse struct {
	Success  bool           `json:"success"`
	Data     []entity.Offer `json:"data"`
	Currency string         `json:"currency"`
	Error    string         `json:"error"`
}

// SearchPrices returns direct one-way offers for one departure date
func (r *TravelpayoutsRepository) SearchPrices(ctx context.Context, departureDate string) ([]entity.Offer, error) {
	const op = "travelpayouts"

	params := url.Values{}
	params.Set("origin", r.origin)
	params.Set("destination", r.destination)
	params.Set("departure_at", departureDate)
	params.Set("currency", r.currency)
	params.Set("limit", strconv.Itoa(r.limit))
	params.Set("page", "1")
	params.Set("one_way", "true")
	params.Set("direct", "true")
	params.Set("token", r.token)

	reqURL := fmt.Sprintf("%s/aviasales/v3/prices_for_dates?%s", r.baseURL, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	r.logger.Info("Searching flights",
		"origin", r.origin,
		"destination", r.destination,
		"date", departureDate)

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, &entity.RequestError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &entity.RequestError{Op: op, Err: err}
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &entity.ResponseError{Op: op, StatusCode: resp.StatusCode, Body: string(body)}
	}

	var response pricesForDatesResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, &entity.ResponseError{Op: op, StatusCode: resp.StatusCode, Err: err}
	}

	if !response.Success {
		return nil, &entity.ResponseError{Op: op, StatusCode: resp.StatusCode, Body: response.Error}
	}

	offers := response.Data
	for i := range offers {
		offers[i].Currency = response.Currency
	}

	r.logger.Info("Flight search finished", "date", departureDate, "offers", len(offers))
	return offers, nil
}
