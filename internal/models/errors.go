package models

import (
	"errors"
	"fmt"
	"strings"
)

// Error categories
var (
	// ErrDataAbsent indicates that no qualifying data exists for a component
	ErrDataAbsent = errors.New("data absent")

	// ErrEntityNotResolved indicates a player or team name matched nothing
	ErrEntityNotResolved = errors.New("entity not resolved")

	// ErrMalformedInput indicates an invalid request value
	ErrMalformedInput = errors.New("malformed input")
)

// DataAbsent describes why a component produced no result. It travels inside
// results rather than as an error.
type DataAbsent struct {
	Reason          string   `json:"reason"`
	AvailableEvents []string `json:"available_events,omitempty"`
	Candidates      []string `json:"candidates,omitempty"`
}

// Error implements error so a DataAbsent can be wrapped when a caller wants one.
func (d *DataAbsent) Error() string {
	return fmt.Sprintf("data absent: %s", d.Reason)
}

// Is matches ErrDataAbsent.
func (d *DataAbsent) Is(target error) bool {
	return target == ErrDataAbsent
}

// EntityKind distinguishes what kind of name failed to resolve.
type EntityKind string

// Entity kinds
const (
	EntityPlayer EntityKind = "player"
	EntityTeam   EntityKind = "team"
)

// EntityNotResolvedError carries the query and the closest names that were
// considered.
type EntityNotResolvedError struct {
	Kind       EntityKind
	Query      string
	Candidates []string
}

func (e *EntityNotResolvedError) Error() string {
	if len(e.Candidates) == 0 {
		return fmt.Sprintf("%s %q not resolved", e.Kind, e.Query)
	}
	return fmt.Sprintf("%s %q not resolved (closest: %s)", e.Kind, e.Query, strings.Join(e.Candidates, ", "))
}

// Is matches ErrEntityNotResolved.
func (e *EntityNotResolvedError) Is(target error) bool {
	return target == ErrEntityNotResolved
}

// MalformedInputError rejects a request field.
type MalformedInputError struct {
	Field  string
	Reason string
}

func (e *MalformedInputError) Error() string {
	return fmt.Sprintf("malformed input: %s: %s", e.Field, e.Reason)
}

// Is matches ErrMalformedInput.
func (e *MalformedInputError) Is(target error) bool {
	return target == ErrMalformedInput
}
