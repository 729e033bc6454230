package client

import (
	"fmt"

	"github.com/pkg/errors"
	"polishstash/pkg/libstash"
)

// ShowProfile prints the business name applied on this device.
func ShowProfile() error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	name := store.BusinessName()
	if pending := store.PendingBusinessName(); pending != "" {
		fmt.Printf("%s (pending cloud save: %s)\n", name, pending)
		return nil
	}

	fmt.Println(name)
	return nil
}

// SetProfile applies the business name on this device and pushes it to the
// cloud. Offline, the name is kept pending and pushed on the next login.
func SetProfile(name string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	cfg, err := Load()
	if err == nil {
		var client libstash.Client
		client, err = newClient(cfg)
		if err == nil {
			err = client.SaveProfile(name)
		}
	}
	if err != nil {
		if err := store.SetPendingBusinessName(name); err != nil {
			return errors.Wrap(err, "could not keep business name pending")
		}
		fmt.Println("Cloud unreachable, business name kept pending")
		return nil
	}

	if err := store.SetBusinessName(name); err != nil {
		return errors.Wrap(err, "could not save business name")
	}
	err = store.SetPendingBusinessName("")
	return errors.Wrap(err, "could not clear pending business name")
}
