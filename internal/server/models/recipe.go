package models

// Recipe is a recipe owned by a user. User is populated on reads.
type Recipe struct {
	ID                int64  `json:"id"`
	Title             string `json:"title"`
	Instructions      string `json:"instructions"`
	MinutesToComplete *int   `json:"minutes_to_complete"`
	UserID            int64  `json:"-"`
	User              *User  `json:"user"`
}
