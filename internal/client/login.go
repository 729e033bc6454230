package client

import (
	"fmt"

	"github.com/chzyer/readline"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"polishstash/internal/stash"
	"polishstash/pkg/libstash"
)

// Login connects to a polishstash server and reconciles the local
// owned-set with the account's cloud inventory.
func Login() error {
	return authenticate(func(client libstash.Client, email, password string) error {
		return client.Login(email, password)
	})
}

// Register creates an account on a polishstash server and reconciles the
// local owned-set with the (empty) cloud inventory.
func Register() error {
	return authenticate(func(client libstash.Client, email, password string) error {
		return client.Register(email, password)
	})
}

func authenticate(auth func(client libstash.Client, email, password string) error) error {
	cfg := Config{}

	endpoint, err := readline.Line("Endpoint: ")
	if err != nil {
		return errors.Wrap(err, "could not read endpoint from stdin")
	}
	cfg.Endpoint = endpoint

	client, err := libstash.NewDefaultClient(cfg.Endpoint)
	if err != nil {
		return errors.Wrap(err, "could not reach given endpoint")
	}

	cfg.Email, err = readline.Line("Email: ")
	if err != nil {
		return errors.Wrap(err, "could not read email from stdin")
	}

	password, err := readline.Password("Password: ")
	if err != nil {
		return errors.Wrap(err, "could not read password from stdin")
	}

	if err = auth(client, cfg.Email, string(password)); err != nil {
		return errors.Wrap(err, "could not login")
	}
	cfg.BearerToken = client.BearerToken()
	cfg.UserID = client.UserID()

	if err = Save(cfg); err != nil {
		return err
	}

	//
	// Reconcile owned-sets
	//

	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	logger := NewLogger()
	reconciler, err := newReconciler(cfg, store, logger)
	if err != nil {
		return err
	}

	set, err := reconciler.OnLogin(cfg.UserID)
	if err != nil {
		return errors.Wrap(err, "could not reconcile owned-set")
	}
	fmt.Printf("Owned-set reconciled: %d shades\n", len(set))

	syncProfile(client, store, logger)
	return nil
}

// syncProfile pushes the business name typed while logged out, or pulls
// the cloud one. Best effort, a failure does not fail the login.
func syncProfile(client libstash.Client, store *stash.Store, logger logrus.FieldLogger) {
	if pending := store.PendingBusinessName(); pending != "" {
		if err := client.SaveProfile(pending); err != nil {
			logger.WithError(err).Warn("could not push pending business name")
			return
		}
		_ = store.SetBusinessName(pending)
		_ = store.SetPendingBusinessName("")
		return
	}

	name, err := client.Profile()
	if err != nil {
		logger.WithError(err).Warn("could not fetch profile")
		return
	}
	_ = store.SetBusinessName(name)
}
