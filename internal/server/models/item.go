package models

import "time"

// Item is a catalog entry owned by one user. ClientKey is the client-side
// UUID supplied on creation; (user_id, client_key) is unique so repeated
// creates of the same entry collapse into one row.
type Item struct {
	ID        int64
	UserID    string
	ClientKey string
	Name      string
	Size      string
	ImageURL  string
	CreatedAt time.Time
}
