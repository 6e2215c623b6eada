package models

// Named is a nested name-carrying object (genre, director).
type Named struct {
	Name        string `json:"Name"`
	Description string `json:"Description,omitempty"`
}

// Movie is a catalog entry. The catalog is owned by the service;
// the client only reads it.
type Movie struct {
	ID          string `json:"_id"`
	Title       string `json:"Title"`
	Description string `json:"Description,omitempty"`
	Genre       Named  `json:"Genre"`
	Director    Named  `json:"Director"`
	Image       string `json:"Image,omitempty"`
}
