package models

// SearchState is the controller's position in one search.
type SearchState string

const (
	StateIdle    SearchState = "idle"
	StateLoading SearchState = "loading"
	StateSuccess SearchState = "success"
	StateError   SearchState = "error"
)

// ViewModel is what a presentation layer renders. It is never persisted.
type ViewModel struct {
	SearchID string          `json:"searchId,omitempty"`
	State    SearchState     `json:"state"`
	Country  *CountryProfile `json:"country"`
	FunFact  *string         `json:"funFact"`
	Flights  *FlightBundle   `json:"flightData"`
	Loading  bool            `json:"loading"`
}
