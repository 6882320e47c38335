package session

import "github.com/google/uuid"

// User is the stored profile. JSON field names match the persisted format.
type User struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
	Phone     string `json:"phone,omitempty"`
}

// DisplayName is the username, or the email when no username is set.
func (u User) DisplayName() string {
	if u.Username != "" {
		return u.Username
	}
	return u.Email
}

// Registration is the input to Store.Register.
type Registration struct {
	Email     string
	Password  string
	Username  string
	FirstName string
	LastName  string
	Phone     string
}

// Credentials is the input to Store.Login.
type Credentials struct {
	Email    string
	Password string
}

// IDGenerator creates user ids.
type IDGenerator interface {
	Generate() string
}

// UUIDv7Generator generates time-sortable UUIDv7 user ids.
//
// Thread-safety: UUIDv7Generator is stateless and safe for concurrent use.
type UUIDv7Generator struct{}

// Generate creates a new UUIDv7 and returns it as a hyphenated string.
//
// Panics if UUID generation fails (should never happen in practice).
func (g UUIDv7Generator) Generate() string {
	return uuid.Must(uuid.NewV7()).String()
}
