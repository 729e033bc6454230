package client

import (
	"fmt"

	"github.com/pkg/errors"
	"polishstash/internal/catalog"
	"polishstash/internal/stash"
)

// Toggle flips the owned state of the given codes. The local store is
// updated right away; cloud pushes are debounced and best effort. Without
// stored credentials the toggles stay local.
func Toggle(codes []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	set, err := store.Load()
	if err != nil {
		return err
	}

	toggle := localToggle(store)
	if syncer := newSyncer(store); syncer != nil {
		defer syncer.Flush()
		toggle = syncer.Toggle
	}

	for _, raw := range codes {
		code := catalog.NormalizeCode(raw)
		owned := !set.Has(code)

		if err := toggle(code, owned); err != nil {
			return errors.Wrapf(err, "could not toggle %s", code)
		}

		if owned {
			set.Add(code)
			fmt.Printf("+ %s\n", code)
			continue
		}
		set.Remove(code)
		fmt.Printf("- %s\n", code)
	}

	return nil
}

func localToggle(store *stash.Store) func(code string, owned bool) error {
	return func(code string, owned bool) error {
		return store.Toggle(code, owned)
	}
}

func newSyncer(store *stash.Store) *stash.Syncer {
	cfg, err := Load()
	if err != nil {
		return nil
	}

	client, err := newClient(cfg)
	if err != nil {
		return nil
	}

	return stash.NewSyncer(store, stash.NewCloud(client, NewLogger()))
}
