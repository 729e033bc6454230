package database

import (
	"polishstash/internal/model"
)

type (
	// A Client can interacts with the database.
	Client interface {
		// Save inserts or updates the entry in database with the given model.
		Save(m model.Model) error
		// Delete deletes the entry in database with the given model.
		Delete(m model.Model) error
		// Close the database.
		Close() error
		// IsNotFound returns true if err is a not found error.
		IsNotFound(err error) bool

		UserInteraction
		ProfileInteraction
		InventoryInteraction
	}

	// An UserInteraction defines all the methods used to interact with a user record.
	UserInteraction interface {
		// FindUser returns the user for the given id (UUID).
		FindUser(id string) (*model.User, error)
		// FindUserByMail returns the user for the given email.
		FindUserByMail(email string) (*model.User, error)
	}

	// A ProfileInteraction defines all the methods used to interact with a profile record.
	ProfileInteraction interface {
		// FindProfileByUserID returns the profile for the given user id.
		// A missing profile is a not found error; callers treat it as an empty profile.
		FindProfileByUserID(userID string) (*model.Profile, error)
	}

	// An InventoryInteraction defines all the methods used to interact with inventory rows.
	InventoryInteraction interface {
		// FindInventoryCodes returns the distinct codes stored for the given user, sorted.
		FindInventoryCodes(userID string) ([]string, error)
		// SaveInventoryCode upserts one (user, code) row.
		SaveInventoryCode(userID, code string) error
		// SaveInventoryCodes upserts the given codes for the user in one transaction.
		SaveInventoryCodes(userID string, codes []string) error
		// ReplaceInventory swaps the user's whole inventory for the given codes
		// in one transaction. An empty list empties the inventory.
		ReplaceInventory(userID string, codes []string) error
		// RemoveInventoryCode deletes one (user, code) row. Removing an absent code is not an error.
		RemoveInventoryCode(userID, code string) error
		// RemoveInventoryByUserID deletes every row of the given user.
		RemoveInventoryByUserID(userID string) error
	}
)
