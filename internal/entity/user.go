package entity

// User is a participant identity as asserted by the client.
type User struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Player is a User bound to exactly one mark within a room.
type Player struct {
	User
	Mark string `json:"mark"`
}
