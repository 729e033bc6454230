// Package client implements the device side commands: local owned-set
// management and its reconciliation with the account's cloud inventory.
package client

import (
	"encoding/json"
	"fmt"
	"io/ioutil"
	"os"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"polishstash/internal/stash"
	"polishstash/pkg/libstash"
)

const (
	credentialsfile = ".stashc"
	storefile       = ".stashc.db"
)

// A Config holds client's configuration.
type Config struct {
	Endpoint    string `json:"endpoint"`
	Email       string `json:"email"`
	UserID      string `json:"user_id"`
	BearerToken string `json:"bearer_token"`
	Policy      string `json:"policy,omitempty"`
}

// Remove removes the credentials file from the current directory.
func Remove() error {
	return os.Remove(credentialsfile)
}

// Load gets the configuration from the current folder according to `credentialsfile` const.
func Load() (Config, error) {
	var cfg Config

	payload, err := ioutil.ReadFile(credentialsfile)
	if err != nil {
		return cfg, errors.Wrap(err, "could not read credentials file (did you login?)")
	}

	err = json.Unmarshal(payload, &cfg)
	return cfg, errors.Wrap(err, "could not parse config")
}

// Save stores the configuration in the current folder according to `credentialsfile` const.
func Save(cfg Config) error {
	payload, err := json.Marshal(cfg)
	if err != nil {
		return errors.Wrap(err, "could not serialize config")
	}

	fmt.Println("Storing credentials in current directory as " + credentialsfile)
	err = ioutil.WriteFile(credentialsfile, payload, 0600)
	return errors.Wrap(err, "could not store credentials")
}

func openStore() (*stash.Store, error) {
	return stash.OpenStore(storefile)
}

func newClient(cfg Config) (libstash.Client, error) {
	client, err := libstash.NewDefaultClient(cfg.Endpoint)
	if err != nil {
		return nil, errors.Wrap(err, "could not reach given endpoint")
	}
	client.SetBearerToken(cfg.BearerToken)
	return client, nil
}

func newReconciler(cfg Config, store *stash.Store, logger logrus.FieldLogger) (*stash.Reconciler, error) {
	client, err := newClient(cfg)
	if err != nil {
		return nil, err
	}

	policy, err := stash.ParsePolicy(cfg.Policy)
	if err != nil {
		return nil, err
	}

	cloud := stash.NewCloud(client, logger)
	return stash.NewReconciler(store, cloud, policy, logger), nil
}
