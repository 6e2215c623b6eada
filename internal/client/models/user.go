// Package models defines the wire/domain types exchanged with the
// movies-flix service: users, sessions, and catalog movies.
//
// Field names follow the service's JSON convention (capitalized keys,
// Mongo-style "_id").
package models

import "slices"

// User is the server-side user record as the service returns it.
// Password is write-only: it is sent on registration and profile updates
// but the service never echoes it back, and the client never displays it.
type User struct {
	ID             string   `json:"_id,omitempty"`
	Username       string   `json:"Username"`
	Password       string   `json:"Password,omitempty"`
	Email          string   `json:"Email"`
	Birthday       string   `json:"Birthday,omitempty"`
	FavoriteMovies []string `json:"FavoriteMovies"`
}

// Clone returns a deep copy. Used to keep draft and cached profile
// copies independent until a save is committed.
func (u *User) Clone() *User {
	if u == nil {
		return nil
	}
	c := *u
	c.FavoriteMovies = slices.Clone(u.FavoriteMovies)
	return &c
}

// HasFavorite reports whether the movie id is in the user's favorites.
func (u *User) HasFavorite(movieID string) bool {
	return u != nil && slices.Contains(u.FavoriteMovies, movieID)
}
