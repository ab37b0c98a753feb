// internal/domain/entity/flight_info.go
package entity

// FlightInfo holds live flight data from the enrichment API.
// Seat counts are not guaranteed by the provider and may be absent.
type FlightInfo struct {
	FlightNumber  string  `json:"flight_number"`
	AirlineIATA   *string `json:"airline_iata"`
	DepIATA       *string `json:"dep_iata"`
	ArrIATA       *string `json:"arr_iata"`
	DepTime       *string `json:"dep_time"`
	ArrTime       *string `json:"arr_time"`
	Duration      *int64  `json:"duration"`
	Status        *string `json:"status"`
	AircraftICAO  *string `json:"aircraft_icao"`
	RegNumber     *string `json:"reg_number"`
	SeatsEconomy  *int64  `json:"seats_economy"`
	SeatsBusiness *int64  `json:"seats_business"`
	SeatsFirst    *int64  `json:"seats_first"`
}

// HasSeatInfo reports whether any cabin seat count is present
func (f *FlightInfo) HasSeatInfo() bool {
	return f.SeatsEconomy != nil || f.SeatsBusiness != nil || f.SeatsFirst != nil
}
