package runsignup

// racesResponse is the top-level listing payload for one page.
type racesResponse struct {
	Races []raceWrapper `json:"races"`
}

// raceWrapper mirrors the API's nesting of each row under "race".
type raceWrapper struct {
	Race Race `json:"race"`
}

// Race is one raw listing row, prior to normalization.
type Race struct {
	RaceID      int     `json:"race_id"`
	Name        string  `json:"name"`
	NextDate    string  `json:"next_date"`
	Description string  `json:"description"`
	URL         string  `json:"url"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	Address     Address `json:"address"`
	Events      []Event `json:"events"`
}

// Address is the race location block.
type Address struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	Zipcode string `json:"zipcode"`
}

// Event is one distance offered under a race.
type Event struct {
	EventID  int    `json:"event_id"`
	Name     string `json:"name"`
	Distance string `json:"distance"`
}
