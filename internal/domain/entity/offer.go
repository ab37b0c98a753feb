// internal/domain/entity/offer.go
package entity

// Offer represents a single flight option returned by the pricing API
type Offer struct {
	Origin             string `json:"origin"`
	Destination        string `json:"destination"`
	OriginAirport      string `json:"origin_airport"`
	DestinationAirport string `json:"destination_airport"`
	Price              int64  `json:"price"`
	Currency           string `json:"-"`
	Airline            string `json:"airline"`
	FlightNumber       string `json:"flight_number"`
	DepartureAt        string `json:"departure_at"`
	ReturnAt           string `json:"return_at,omitempty"`
	Transfers          int64  `json:"transfers"`
	Duration           int64  `json:"duration"`
	Link               string `json:"link"`
	Seats              *int64 `json:"seats,omitempty"`
}

// FlightIATA returns the combined flight designator, e.g. "SU1234"
func (o *Offer) FlightIATA() string {
	return o.Airline + o.FlightNumber
}
