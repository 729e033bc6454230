package database

import (
	"sort"
	"time"

	"github.com/asdine/storm/v3"
	"github.com/asdine/storm/v3/codec/msgpack"
	"github.com/asdine/storm/v3/q"
	"github.com/gofrs/uuid"
	"github.com/pkg/errors"
	"polishstash/internal/model"
)

type strm struct {
	db *storm.DB
}

// StormCodec is the format used to store data in the database.
var StormCodec = storm.Codec(msgpack.Codec)

// StormInit initializes Storm database.
func StormInit(database string) error {
	db, err := storm.Open(database, StormCodec)
	if err != nil {
		return errors.Wrap(err, "could not get database connection")
	}
	defer db.Close()

	if err := db.Init(&model.User{}); err != nil {
		return errors.Wrap(err, "could not init user index")
	}

	if err := db.Init(&model.Profile{}); err != nil {
		return errors.Wrap(err, "could not init profile index")
	}

	err = db.Init(&model.InventoryRow{})
	return errors.Wrap(err, "could not init inventory index")
}

// StormReIndex reindex Storm database.
func StormReIndex(database string) error {
	db, err := storm.Open(database, StormCodec)
	if err != nil {
		return errors.Wrap(err, "could not get database connection")
	}
	defer db.Close()

	if err := db.ReIndex(&model.User{}); err != nil {
		return errors.Wrap(err, "could not ReIndex users")
	}

	if err := db.ReIndex(&model.Profile{}); err != nil {
		return errors.Wrap(err, "could not ReIndex profiles")
	}

	err = db.ReIndex(&model.InventoryRow{})
	return errors.Wrap(err, "could not ReIndex inventory")
}

// StormOpen returns a new Storm database connection.
func StormOpen(database string) (Client, error) {
	db, err := storm.Open(database, StormCodec)
	if err != nil {
		return nil, errors.Wrap(err, "could not get database connection")
	}

	return &strm{
		db: db,
	}, nil
}

// Save inserts or updates the entry in database with the given model.
func (c *strm) Save(m model.Model) error {
	t := time.Now().UTC()
	m.SetUpdatedAt(t)

	if m.GetID() == "" {
		m.SetID(uuid.Must(uuid.NewV4()).String())
		m.SetCreatedAt(t)
	}
	if m.GetCreatedAt() == nil {
		m.SetCreatedAt(t)
	}

	return errors.Wrap(c.db.Save(m), "could not save the model")
}

// Delete deletes the entry in database with the given model.
func (c *strm) Delete(m model.Model) error {
	return errors.Wrap(c.db.DeleteStruct(m), "could not delete the model")
}

// Close the database.
func (c *strm) Close() error {
	return c.db.Close()
}

// IsNotFound returns true if err is a not found error.
func (c *strm) IsNotFound(err error) bool {
	return errors.Cause(err) == storm.ErrNotFound
}

// FindUser returns the user for the given id (UUID).
func (c *strm) FindUser(id string) (*model.User, error) {
	var user model.User
	if err := c.db.One("ID", id, &user); err != nil {
		return nil, errors.Wrap(err, "find user by id")
	}
	return &user, nil
}

// FindUserByMail returns the user for the given email.
func (c *strm) FindUserByMail(email string) (*model.User, error) {
	var user model.User
	if err := c.db.One("Email", email, &user); err != nil {
		return nil, errors.Wrap(err, "find user by mail")
	}
	return &user, nil
}

// FindProfileByUserID returns the profile for the given user id.
func (c *strm) FindProfileByUserID(userID string) (*model.Profile, error) {
	var profile model.Profile
	if err := c.db.One("UserID", userID, &profile); err != nil {
		return nil, errors.Wrap(err, "find profile by user id")
	}
	return &profile, nil
}

// FindInventoryCodes returns the distinct codes stored for the given user, sorted.
func (c *strm) FindInventoryCodes(userID string) ([]string, error) {
	rows := make([]*model.InventoryRow, 0)
	err := c.db.Select(q.Eq("UserID", userID)).Find(&rows)
	if err != nil && !c.IsNotFound(err) {
		return nil, errors.Wrap(err, "could not find inventory rows")
	}

	seen := make(map[string]bool, len(rows))
	codes := make([]string, 0, len(rows))
	for _, row := range rows {
		if seen[row.Code] {
			continue
		}
		seen[row.Code] = true
		codes = append(codes, row.Code)
	}
	sort.Strings(codes)

	return codes, nil
}

// SaveInventoryCode upserts one (user, code) row.
func (c *strm) SaveInventoryCode(userID, code string) error {
	return c.Save(newInventoryRow(userID, code))
}

// SaveInventoryCodes upserts the given codes for the user in one transaction.
func (c *strm) SaveInventoryCodes(userID string, codes []string) error {
	if len(codes) == 0 {
		return nil
	}

	tx, err := c.db.Begin(true)
	if err != nil {
		return errors.Wrap(err, "could not begin transaction")
	}
	defer tx.Rollback()

	if err := saveInventoryCodes(tx, userID, codes); err != nil {
		return err
	}

	return errors.Wrap(tx.Commit(), "could not commit inventory rows")
}

// ReplaceInventory swaps the user's whole inventory for the given codes in
// one transaction. Either the new inventory lands or the old one stays.
func (c *strm) ReplaceInventory(userID string, codes []string) error {
	tx, err := c.db.Begin(true)
	if err != nil {
		return errors.Wrap(err, "could not begin transaction")
	}
	defer tx.Rollback()

	err = tx.Select(q.Eq("UserID", userID)).Delete(&model.InventoryRow{})
	if err != nil && err != storm.ErrNotFound {
		return errors.Wrap(err, "could not delete inventory rows")
	}

	if err := saveInventoryCodes(tx, userID, codes); err != nil {
		return err
	}

	return errors.Wrap(tx.Commit(), "could not commit inventory replacement")
}

// RemoveInventoryCode deletes one (user, code) row.
func (c *strm) RemoveInventoryCode(userID, code string) error {
	err := c.db.Select(q.Eq("ID", model.InventoryRowID(userID, code))).Delete(&model.InventoryRow{})
	if err != nil && err != storm.ErrNotFound {
		return errors.Wrap(err, "could not delete inventory row")
	}
	return nil
}

// RemoveInventoryByUserID deletes every row of the given user.
func (c *strm) RemoveInventoryByUserID(userID string) error {
	err := c.db.Select(q.Eq("UserID", userID)).Delete(&model.InventoryRow{})
	if err != nil && err != storm.ErrNotFound {
		return errors.Wrap(err, "could not delete inventory rows")
	}
	return nil
}

func saveInventoryCodes(node storm.Node, userID string, codes []string) error {
	t := time.Now().UTC()

	for _, code := range codes {
		row := newInventoryRow(userID, code)
		row.CreatedAt = &t
		row.UpdatedAt = &t

		if err := node.Save(row); err != nil {
			return errors.Wrap(err, "could not save inventory row")
		}
	}
	return nil
}

func newInventoryRow(userID, code string) *model.InventoryRow {
	return &model.InventoryRow{
		Base:   model.Base{ID: model.InventoryRowID(userID, code)},
		UserID: userID,
		Code:   code,
	}
}
