package model

// An InventoryRow marks one item identifier as on hand for one account.
// Its primary key is `<user_id>:<code>` so a (user, code) pair exists at
// most once and point upserts are natural.
type InventoryRow struct {
	Base `msgpack:",inline" storm:"inline"`

	UserID string `json:"user_uuid" msgpack:"user_id" storm:"index"`
	Code   string `json:"code"      msgpack:"code"`
}

// InventoryRowID builds the primary key of an inventory row.
func InventoryRowID(userID, code string) string {
	return userID + ":" + code
}
