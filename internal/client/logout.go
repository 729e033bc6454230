package client

import (
	"github.com/pkg/errors"
)

// Logout disconnects from the polishstash server and clears the local
// owned-set so the next operator starts from a blank device. The account's
// cloud inventory is left untouched.
func Logout() error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.Clear(); err != nil {
		return errors.Wrap(err, "could not clear local owned-set")
	}

	err = Remove()
	return errors.Wrap(err, "could not remove credentials file")
}
