package pet

import (
	"errors"
	"fmt"
)

// State is what the pet is doing right now.
type State int

const (
	StateIdle State = iota
	StatePlaying
	StatePunching
	StateSleepingTransition
	StateSleeping
	StateWakeup
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StatePlaying:
		return "playing"
	case StatePunching:
		return "punching"
	case StateSleepingTransition:
		return "sleeping_transition"
	case StateSleeping:
		return "sleeping"
	case StateWakeup:
		return "wakeup"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Asleep reports whether the pet is falling asleep, asleep or waking up.
// Stat drains pause in all three.
func (s State) Asleep() bool {
	return s == StateSleepingTransition || s == StateSleeping || s == StateWakeup
}

// Action is a user request.
type Action int

const (
	ActionPunch Action = iota
	ActionPlay
	ActionSleep
	ActionWakeup
)

func (a Action) String() string {
	switch a {
	case ActionPunch:
		return "punch"
	case ActionPlay:
		return "play"
	case ActionSleep:
		return "sleep"
	case ActionWakeup:
		return "wakeup"
	default:
		return fmt.Sprintf("action(%d)", int(a))
	}
}

// Rejection reasons. Request wraps one of these in a *TransitionError.
var (
	ErrInvalidTransition = errors.New("invalid transition")
	ErrBusy              = errors.New("pet is busy")
	ErrSleeping          = errors.New("pet is sleeping")
	ErrTired             = errors.New("pet is too tired")
	ErrNotTired          = errors.New("pet is not tired")
)

// TransitionError is the rejection signal returned by Request. The session
// is left exactly as it was.
type TransitionError struct {
	From   State
	Action Action
	Err    error
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("%s from %s rejected: %v", e.Action, e.From, e.Err)
}

func (e *TransitionError) Unwrap() error {
	return e.Err
}
