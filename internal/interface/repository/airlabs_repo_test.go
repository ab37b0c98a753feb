package repository

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"farewatch-service/internal/domain/entity"
	"farewatch-service/internal/infrastructure/config"
	"farewatch-service/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func airLabsConfig(baseURL string) *config.Config {
	return &config.Config{
		AirLabsAPIKey:  "al-key",
		AirLabsBaseURL: baseURL,
	}
}

func TestAirLabs_GetFlightInfo(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v9/flight", r.URL.Path)
		assert.Equal(t, "SU30", r.URL.Query().Get("flight_iata"))
		assert.Equal(t, "al-key", r.URL.Query().Get("api_key"))

		w.Write([]byte(`{
			"response": [
				{"flight_number":"30","airline_iata":"SU","dep_iata":"SVO","arr_iata":"LED",
				 "status":"scheduled","aircraft_icao":"A320","seats_economy":12,"seats_business":2}
			]
		}`))
	}))
	defer server.Close()

	repo := NewAirLabsRepository(airLabsConfig(server.URL), logger.NewLogger())
	info, err := repo.GetFlightInfo(context.Background(), "SU", "30")
	require.NoError(t, err)
	require.NotNil(t, info)

	require.NotNil(t, info.Status)
	assert.Equal(t, "scheduled", *info.Status)
	require.NotNil(t, info.SeatsEconomy)
	assert.Equal(t, int64(12), *info.SeatsEconomy)
	assert.Nil(t, info.SeatsFirst)
	assert.True(t, info.HasSeatInfo())
}

func TestAirLabs_NoFlightFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"response": []}`))
	}))
	defer server.Close()

	repo := NewAirLabsRepository(airLabsConfig(server.URL), logger.NewLogger())
	info, err := repo.GetFlightInfo(context.Background(), "SU", "9999")
	require.NoError(t, err)
	assert.Nil(t, info)
}

func TestAirLabs_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"error": {"message": "unknown api_key", "code": "unknown_api_key"}}`))
	}))
	defer server.Close()

	repo := NewAirLabsRepository(airLabsConfig(server.URL), logger.NewLogger())
	_, err := repo.GetFlightInfo(context.Background(), "SU", "30")
	require.Error(t, err)

	var respErr *entity.ResponseError
	require.True(t, errors.As(err, &respErr))
	assert.Contains(t, respErr.Body, "unknown api_key")
}

func TestAirLabs_TransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	repo := NewAirLabsRepository(airLabsConfig(server.URL), logger.NewLogger())
	_, err := repo.GetFlightInfo(context.Background(), "SU", "30")

	var reqErr *entity.RequestError
	require.True(t, errors.As(err, &reqErr))
}
