package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingAttribute is returned when a year link has no href.
	ErrMissingAttribute = errors.New("year link href not found")
	// ErrMissingField is returned when a calendar cell lacks data-date or data-level.
	ErrMissingField = errors.New("required contribution day attribute missing")
	// ErrInvalidField is returned when a calendar cell attribute cannot be interpreted.
	ErrInvalidField = errors.New("invalid contribution day attribute")
	// ErrEmptyCalendar is returned when a year page renders no calendar cells.
	ErrEmptyCalendar = errors.New("no contribution days found")
	// ErrEmptyRange is returned when a year summary is built from zero records.
	ErrEmptyRange = errors.New("date range information missing")
	// ErrNoData is returned when no year could be discovered for a user.
	ErrNoData = errors.New("no contribution data found")
	// ErrYearNotFound is returned when the requested year label was not discovered.
	ErrYearNotFound = errors.New("year not found")
	// ErrInvalidShape is returned for an unknown dataset shape.
	ErrInvalidShape = errors.New("invalid format")
	// ErrInvalidIdentity is returned for a username that cannot name a profile.
	ErrInvalidIdentity = errors.New("invalid username")
)

// FetchError reports a failure to retrieve a page from the source site.
// Status is zero when the request never produced a response.
type FetchError struct {
	Path   string
	Status int
	Err    error
}

func (e *FetchError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("failed to fetch %s: %d", e.Path, e.Status)
	}
	return fmt.Sprintf("error fetching %s: %v", e.Path, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}
