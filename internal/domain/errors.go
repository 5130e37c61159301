package domain

import "errors"

var (
	// ErrStartup marks a store that could not be opened, created or seeded.
	ErrStartup = errors.New("store startup failed")
	// ErrQuery marks a read that failed after a successful startup.
	ErrQuery = errors.New("store query failed")
	// ErrStoreBusy is returned when the store lock is not acquired in time.
	ErrStoreBusy = errors.New("store busy")
)
