package models

// FilterAll selects every sensor regardless of type.
const FilterAll = "all"

// SensorQuery holds the query string options accepted by the read endpoints.
type SensorQuery struct {
	Type string `schema:"type"`
}

// FilterSelection is the body of a filter update.
type FilterSelection struct {
	Filter string `json:"filter"`
}

// RecentQuery holds the options of the recent readings endpoint. A zero Limit
// selects the default.
type RecentQuery struct {
	Limit int `schema:"limit"`
}
