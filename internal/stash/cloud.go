package stash

import (
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"polishstash/pkg/libstash"
)

// Cloud wraps the raw API client with the failure semantics the device
// side relies on: reads degrade to empty, implicit writes are best effort,
// and only the explicit replace is fallible to the operator.
type Cloud struct {
	client libstash.Client
	logger logrus.FieldLogger
}

// NewCloud returns a new Cloud adapter.
func NewCloud(client libstash.Client, logger logrus.FieldLogger) *Cloud {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Cloud{client: client, logger: logger}
}

// FetchAll returns the account's owned-set, degrading to an empty set on
// any failure. It never returns an error; a warning is logged instead.
func (c *Cloud) FetchAll() Set {
	set, err := c.Fetch()
	if err != nil {
		c.logger.WithError(err).Warn("could not fetch cloud inventory, treating as empty")
		return NewSet()
	}
	return set
}

// Fetch returns the account's owned-set, surfacing failures. Used by the
// manual load path, where the operator expects a definite outcome.
func (c *Cloud) Fetch() (Set, error) {
	codes, err := c.client.FetchInventory()
	if err != nil {
		return nil, errors.Wrap(err, "could not fetch cloud inventory")
	}
	return NewSet(codes...), nil
}

// UpsertOne stores one code, best effort.
func (c *Cloud) UpsertOne(code string) error {
	err := c.client.UpsertCode(code)
	if err != nil {
		c.logger.WithError(err).WithField("code", code).Warn("could not upsert cloud inventory code")
	}
	return errors.Wrap(err, "could not upsert cloud inventory code")
}

// DeleteOne removes one code, best effort.
func (c *Cloud) DeleteOne(code string) error {
	err := c.client.DeleteCode(code)
	if err != nil {
		c.logger.WithError(err).WithField("code", code).Warn("could not delete cloud inventory code")
	}
	return errors.Wrap(err, "could not delete cloud inventory code")
}

// UpsertMany stores the given set, best effort. No-op for an empty set.
func (c *Cloud) UpsertMany(set Set) error {
	if len(set) == 0 {
		return nil
	}

	err := c.client.UpsertCodes(set.Codes())
	if err != nil {
		c.logger.WithError(err).Warn("could not push owned-set to cloud")
	}
	return errors.Wrap(err, "could not push owned-set to cloud")
}

// ReplaceAll replaces the account's whole cloud owned-set with the given
// one: delete everything, then insert the full set. A delete failure
// aborts before any insert; an insert failure leaves the account's cloud
// inventory empty. Either failure must be reported to the operator.
func (c *Cloud) ReplaceAll(set Set) error {
	if err := c.client.ClearInventory(); err != nil {
		return errors.Wrap(err, "could not clear cloud inventory, aborting replace")
	}

	if err := c.client.UpsertCodes(set.Codes()); err != nil {
		return errors.Wrap(err, "could not upload owned-set, cloud inventory is now empty")
	}
	return nil
}

// Reset removes every code stored for the account.
func (c *Cloud) Reset() error {
	return errors.Wrap(c.client.ClearInventory(), "could not reset cloud inventory")
}
