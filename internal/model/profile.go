package model

// A Profile holds per-account display settings, independent of inventory.
// There is at most one profile per user.
type Profile struct {
	Base `msgpack:",inline" storm:"inline"`

	UserID       string `json:"user_uuid"     msgpack:"user_id" storm:"unique"`
	BusinessName string `json:"business_name" msgpack:"business_name"`
}
