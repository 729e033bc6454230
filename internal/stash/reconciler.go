package stash

import (
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// A Policy decides how local and cloud owned-sets are combined when an
// account authenticates on this device.
type Policy int

const (
	// AlwaysUnion merges local and cloud unconditionally and pushes the
	// union back. Unsafe on shared devices: a previous operator's marks
	// leak into the next account.
	AlwaysUnion Policy = iota
	// UnionUnlessSwitched merges only when the same account comes back on
	// this device; a different account adopts cloud as-is and local marks
	// are dropped, never pushed.
	UnionUnlessSwitched
	// CloudIsTruth replaces local with cloud on every authentication and
	// never pushes. Pair it with the manual save for deliberate uploads.
	CloudIsTruth
)

func (p Policy) String() string {
	switch p {
	case AlwaysUnion:
		return "always-union"
	case UnionUnlessSwitched:
		return "union-unless-switched"
	case CloudIsTruth:
		return "cloud-is-truth"
	}
	return "unknown"
}

// ParsePolicy parses a policy name. An empty name yields the default
// UnionUnlessSwitched.
func ParsePolicy(name string) (Policy, error) {
	switch name {
	case "", "union-unless-switched":
		return UnionUnlessSwitched, nil
	case "always-union":
		return AlwaysUnion, nil
	case "cloud-is-truth":
		return CloudIsTruth, nil
	}
	return UnionUnlessSwitched, errors.Errorf("unknown reconciliation policy: %s", name)
}

// A Reconciler combines the device-local owned-set with the account's
// cloud owned-set at authentication boundaries.
type Reconciler struct {
	store  *Store
	cloud  *Cloud
	policy Policy
	logger logrus.FieldLogger
}

// NewReconciler returns a new Reconciler applying the given policy.
func NewReconciler(store *Store, cloud *Cloud, policy Policy, logger logrus.FieldLogger) *Reconciler {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Reconciler{store: store, cloud: cloud, policy: policy, logger: logger}
}

// OnLogin reconciles local and cloud owned-sets after a successful
// authentication and returns the resulting set. Cloud failures degrade to
// an empty cloud set; push failures are logged and swallowed.
func (r *Reconciler) OnLogin(userID string) (Set, error) {
	switched := r.detectAccountSwitch(userID)

	remote := r.cloud.FetchAll()
	local, err := r.store.Load()
	if err != nil {
		return nil, err
	}

	var result Set
	var push bool

	switch r.policy {
	case AlwaysUnion:
		result = local.Union(remote)
		push = true
	case UnionUnlessSwitched:
		if switched {
			result = remote
		} else {
			result = local.Union(remote)
			push = true
		}
	case CloudIsTruth:
		result = remote
	}

	r.logger.WithFields(logrus.Fields{
		"policy":   r.policy.String(),
		"switched": switched,
		"local":    len(local),
		"cloud":    len(remote),
		"result":   len(result),
	}).Info("reconciled owned-set")

	if push {
		// Best effort, the next reconciliation converges.
		_ = r.cloud.UpsertMany(result)
	}

	return result, r.store.Save(result)
}

// OnLogout clears the device-local owned-set so the next operator on a
// shared device does not see the previous one's marks. The account's cloud
// rows are left untouched.
func (r *Reconciler) OnLogout() error {
	return r.store.Clear()
}

// SaveToCloud replaces the account's cloud owned-set with the local one.
// This is an explicit operator action: failures are surfaced.
func (r *Reconciler) SaveToCloud() (int, error) {
	local, err := r.store.Load()
	if err != nil {
		return 0, err
	}
	return len(local), r.cloud.ReplaceAll(local)
}

// LoadFromCloud overwrites the local owned-set with the cloud one.
// This is an explicit operator action: failures are surfaced.
func (r *Reconciler) LoadFromCloud() (Set, error) {
	remote, err := r.cloud.Fetch()
	if err != nil {
		return nil, err
	}
	return remote, r.store.Save(remote)
}

// ResetCloud removes every cloud row of the account. Local marks stay.
func (r *Reconciler) ResetCloud() error {
	return r.cloud.Reset()
}

// detectAccountSwitch compares the authenticating account with the
// device-account marker and updates the marker unconditionally.
func (r *Reconciler) detectAccountSwitch(userID string) bool {
	previous := r.store.DeviceUser()
	switched := previous != "" && previous != userID

	if err := r.store.SetDeviceUser(userID); err != nil {
		r.logger.WithError(err).Warn("could not update device-account marker")
	}
	return switched
}
