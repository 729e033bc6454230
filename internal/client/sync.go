package client

import (
	"fmt"

	"github.com/chzyer/readline"
	"github.com/pkg/errors"
)

// SaveStash replaces the account's cloud inventory with the local
// owned-set. Failures are surfaced: a failed replace can leave the cloud
// inventory empty and the operator must know.
func SaveStash() error {
	cfg, err := Load()
	if err != nil {
		return err
	}

	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	reconciler, err := newReconciler(cfg, store, NewLogger())
	if err != nil {
		return err
	}

	n, err := reconciler.SaveToCloud()
	if err != nil {
		return errors.Wrap(err, "could not save owned-set to cloud")
	}

	fmt.Printf("Saved %d shades to cloud\n", n)
	return nil
}

// LoadStash overwrites the local owned-set with the account's cloud
// inventory.
func LoadStash() error {
	cfg, err := Load()
	if err != nil {
		return err
	}

	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	reconciler, err := newReconciler(cfg, store, NewLogger())
	if err != nil {
		return err
	}

	set, err := reconciler.LoadFromCloud()
	if err != nil {
		return errors.Wrap(err, "could not load owned-set from cloud")
	}

	fmt.Printf("Loaded %d shades from cloud\n", len(set))
	return nil
}

// ResetStash removes every code of the account's cloud inventory. The
// local owned-set stays.
func ResetStash() error {
	cfg, err := Load()
	if err != nil {
		return err
	}

	answer, err := readline.Line("This empties the cloud inventory for " + cfg.Email + ". Type 'yes' to confirm: ")
	if err != nil {
		return errors.Wrap(err, "could not read confirmation from stdin")
	}
	if answer != "yes" {
		fmt.Println("Aborted")
		return nil
	}

	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	reconciler, err := newReconciler(cfg, store, NewLogger())
	if err != nil {
		return err
	}

	if err := reconciler.ResetCloud(); err != nil {
		return errors.Wrap(err, "could not reset cloud inventory")
	}

	fmt.Println("Cloud inventory emptied")
	return nil
}
