package panel

import (
	"errors"
	"fmt"
)

// ErrEmptyTriggerID is returned by Register for a trigger without an id.
var ErrEmptyTriggerID = errors.New("panel: trigger id is empty")

// UnknownTriggerError is returned when an event names a trigger that was
// never registered. Callers log it and carry on.
type UnknownTriggerError struct {
	ID PanelID
}

func (e *UnknownTriggerError) Error() string {
	return fmt.Sprintf("panel: unknown trigger %q", e.ID)
}

// DuplicateTriggerError is returned by Register when the id is taken.
type DuplicateTriggerError struct {
	ID PanelID
}

func (e *DuplicateTriggerError) Error() string {
	return fmt.Sprintf("panel: trigger %q already registered", e.ID)
}

// IsUnknownTrigger reports whether err is an UnknownTriggerError.
func IsUnknownTrigger(err error) bool {
	var target *UnknownTriggerError
	return errors.As(err, &target)
}
