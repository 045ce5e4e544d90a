package models

// MaxFlightsPerDirection caps each list of a FlightBundle.
const MaxFlightsPerDirection = 3

type FlightEndpoint struct {
	Airport  string  `json:"airport"`
	Timezone string  `json:"timezone"`
	IATA     string  `json:"iata"`
	ICAO     string  `json:"icao"`
	Terminal *string `json:"terminal"` // nil when no terminal is assigned
	Time     string  `json:"time"`
}

type FlightRecord struct {
	FlightDate   string         `json:"flight_date"`
	FlightStatus string         `json:"flight_status"`
	Departure    FlightEndpoint `json:"departure"`
	Arrival      FlightEndpoint `json:"arrival"`
	Airline      string         `json:"airline"`
	FlightNumber string         `json:"flight_number"`
}

// FlightBundle holds today's arrivals and departures for one airport.
type FlightBundle struct {
	ArrivalFlights   []FlightRecord `json:"arrivalFlights"`
	DepartureFlights []FlightRecord `json:"departureFlights"`
}

// EmptyFlightBundle returns a bundle whose lists encode as [] rather than null.
func EmptyFlightBundle() FlightBundle {
	return FlightBundle{
		ArrivalFlights:   []FlightRecord{},
		DepartureFlights: []FlightRecord{},
	}
}

// IsEmpty reports whether neither direction has any flights.
func (b FlightBundle) IsEmpty() bool {
	return len(b.ArrivalFlights) == 0 && len(b.DepartureFlights) == 0
}
