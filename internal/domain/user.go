package domain

// UserSnapshot is a point-in-time view of a user fetched from the user
// directory. It is never persisted or cached here; every operation resolves
// a fresh snapshot.
type UserSnapshot struct {
	ID             int64  `json:"id"`
	Email          string `json:"email"`
	FirstName      string `json:"firstName"`
	LastName       string `json:"lastName"`
	EmailConfirmed bool   `json:"emailConfirmed"`
	Role           string `json:"role"`
}
