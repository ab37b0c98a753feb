package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"farewatch-service/internal/domain/entity"
	"farewatch-service/internal/infrastructure/config"
	"farewatch-service/pkg/logger"
)

// AirLabsRepository looks up live flight data via the AirLabs API
type AirLabsRepository struct {
	logger  logger.Logger
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewAirLabsRepository creates a new AirLabs flight info repository
func NewAirLabsRepository(cfg *config.Config, logger logger.Logger) *AirLabsRepository {
	return &AirLabsRepository{
		logger:  logger,
		baseURL: cfg.AirLabsBaseURL,
		apiKey:  cfg.AirLabsAPIKey,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

type airLabsResponse struct {
	Response []entity.FlightInfo `json:"response"`
	Error    *struct {
		Message string `json:"message"`
		Code    string `json:"code"`
	} `json:"error"`
}

// GetFlightInfo returns live data for a flight, or (nil, nil) when the
// provider has no record of it
func (r *AirLabsRepository) GetFlightInfo(ctx context.Context, airlineIATA, flightNumber string) (*entity.FlightInfo, error) {
	const op = "airlabs"

	params := url.Values{}
	params.Set("api_key", r.apiKey)
	params.Set("flight_iata", airlineIATA+flightNumber)

	reqURL := fmt.Sprintf("%s/api/v9/flight?%s", r.baseURL, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	r.logger.Info("Querying flight info", "flight", airlineIATA+flightNumber)

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

	var response airLabsResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, &entity.ResponseError{Op: op, StatusCode: resp.StatusCode, Err: err}
	}

	if response.Error != nil {
		return nil, &entity.ResponseError{Op: op, StatusCode: resp.StatusCode, Body: response.Error.Message}
	}

	if len(response.Response) == 0 {
		r.logger.Info("No flight info found", "flight", airlineIATA+flightNumber)
		return nil, nil
	}

	return &response.Response[0], nil
}
