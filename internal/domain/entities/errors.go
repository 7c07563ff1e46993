package entities

import (
	"fmt"
)

// DiscoveryError reports that the discovery root itself is unusable.
// It is fatal to the run; unreadable children are skipped instead.
type DiscoveryError struct {
	Root string
	Err  error
}

func (e *DiscoveryError) Error() string {
	return fmt.Sprintf("discovery failed for root %q: %v", e.Root, e.Err)
}

func (e *DiscoveryError) Unwrap() error {
	return e.Err
}

// ListingError reports that a provider account listing could not be
// completed: authentication/not-found, or transient retries exhausted.
// It is fatal to the run for that account.
type ListingError struct {
	Provider string
	Account  string
	Err      error
}

func (e *ListingError) Error() string {
	return fmt.Sprintf("listing failed for %s account %q: %v", e.Provider, e.Account, e.Err)
}

func (e *ListingError) Unwrap() error {
	return e.Err
}
