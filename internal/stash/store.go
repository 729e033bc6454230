package stash

import (
	"github.com/asdine/storm/v3"
	"github.com/asdine/storm/v3/codec/msgpack"
	"github.com/pkg/errors"
	bolt "go.etcd.io/bbolt"
	"polishstash/internal/catalog"
)

// Device-local keys living next to the owned-set records.
const (
	deviceBucket    = "device"
	deviceUserKey   = "last_user"
	businessNameKey = "business_name"
	pendingNameKey  = "pending_business_name"
)

// An OwnedMark is one owned identifier persisted on this device.
type OwnedMark struct {
	Code string `storm:"id" msgpack:"code"`
}

// A Store is the per-device owned-set store. It also persists the few
// device-local keys (device-account marker, business name).
type Store struct {
	db *storm.DB
}

// OpenStore opens (or creates) the device-local database.
func OpenStore(path string) (*Store, error) {
	db, err := storm.Open(path, storm.Codec(msgpack.Codec))
	if err != nil {
		return nil, errors.Wrap(err, "could not open device store")
	}
	return &Store{db: db}, nil
}

// Close the store.
func (s *Store) Close() error {
	return s.db.Close()
}

// Load returns the persisted owned-set. Legacy short numeric codes are
// zero-padded to width 3 and the migrated form is persisted, so the
// migration runs at most once per entry. Duplicates after migration are
// collapsed by set semantics.
func (s *Store) Load() (Set, error) {
	marks := make([]*OwnedMark, 0)
	if err := s.db.All(&marks); err != nil {
		return nil, errors.Wrap(err, "could not load owned-set")
	}

	set := make(Set, len(marks))
	for _, mark := range marks {
		code := catalog.NormalizeCode(mark.Code)
		set.Add(code)

		if code == mark.Code {
			continue
		}
		if err := s.db.DeleteStruct(mark); err != nil && err != storm.ErrNotFound {
			return nil, errors.Wrap(err, "could not drop legacy owned mark")
		}
		if err := s.db.Save(&OwnedMark{Code: code}); err != nil && err != storm.ErrAlreadyExists {
			return nil, errors.Wrap(err, "could not migrate owned mark")
		}
	}

	return set, nil
}

// Save persists the full given owned-set, replacing the previous one.
func (s *Store) Save(set Set) error {
	tx, err := s.db.Begin(true)
	if err != nil {
		return errors.Wrap(err, "could not begin transaction")
	}
	defer tx.Rollback()

	if err := tx.Drop(&OwnedMark{}); err != nil && !emptyStore(err) {
		return errors.Wrap(err, "could not drop owned-set")
	}
	for _, code := range set.Codes() {
		if err := tx.Save(&OwnedMark{Code: code}); err != nil {
			return errors.Wrap(err, "could not save owned mark")
		}
	}

	return errors.Wrap(tx.Commit(), "could not commit owned-set")
}

// Toggle adds or removes one identifier and persists immediately.
func (s *Store) Toggle(code string, present bool) error {
	if present {
		err := s.db.Save(&OwnedMark{Code: code})
		if err != nil && err != storm.ErrAlreadyExists {
			return errors.Wrap(err, "could not save owned mark")
		}
		return nil
	}

	err := s.db.DeleteStruct(&OwnedMark{Code: code})
	if err != nil && err != storm.ErrNotFound {
		return errors.Wrap(err, "could not delete owned mark")
	}
	return nil
}

// Clear empties the owned-set.
func (s *Store) Clear() error {
	err := s.db.Drop(&OwnedMark{})
	if err != nil && !emptyStore(err) {
		return errors.Wrap(err, "could not clear owned-set")
	}
	return nil
}

// emptyStore reports whether err only means there is nothing to drop yet.
// A store that never held a mark has no bucket at all.
func emptyStore(err error) bool {
	return err == storm.ErrNotFound || err == bolt.ErrBucketNotFound
}

// DeviceUser returns the identifier of the last account that authenticated
// on this device. Empty when no account ever did.
func (s *Store) DeviceUser() string {
	return s.get(deviceUserKey)
}

// SetDeviceUser records the account currently authenticated on this device.
func (s *Store) SetDeviceUser(userID string) error {
	return errors.Wrap(s.db.Set(deviceBucket, deviceUserKey, userID), "could not save device-account marker")
}

// BusinessName returns the business name applied on this device.
func (s *Store) BusinessName() string {
	return s.get(businessNameKey)
}

// SetBusinessName persists the business name applied on this device.
func (s *Store) SetBusinessName(name string) error {
	return errors.Wrap(s.db.Set(deviceBucket, businessNameKey, name), "could not save business name")
}

// PendingBusinessName returns the business name typed but not yet saved to
// the cloud.
func (s *Store) PendingBusinessName() string {
	return s.get(pendingNameKey)
}

// SetPendingBusinessName persists the not-yet-saved business name.
func (s *Store) SetPendingBusinessName(name string) error {
	return errors.Wrap(s.db.Set(deviceBucket, pendingNameKey, name), "could not save pending business name")
}

func (s *Store) get(key string) string {
	var value string
	if err := s.db.Get(deviceBucket, key, &value); err != nil {
		return ""
	}
	return value
}
