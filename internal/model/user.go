package model

// A User represents an account record.
type User struct {
	Base `msgpack:",inline" storm:"inline"`

	Email    string `msgpack:"email" storm:"unique"`
	Password string `msgpack:"password,omitempty"`

	// Tokens issued before this timestamp are revoked.
	PasswordUpdatedAt int64 `msgpack:"password_updated_at"`
}

// NewUser returns a new user.
func NewUser() *User {
	return &User{}
}
