package pet

import "strings"

// GetStatus returns the status emoji(s) for a snapshot: what the pet is
// doing, followed by its most pressing need when one stat runs low.
func GetStatus(s Snapshot) string {
	var activity string
	switch s.State {
	case StateSleeping, StateSleepingTransition:
		activity = StatusEmojiSleeping
	case StateWakeup:
		activity = StatusEmojiWaking
	case StatePunching, StatePlaying:
		activity = StatusEmojiBusy
	default:
		activity = StatusEmojiHappy
	}

	lowest := s.Energy
	feeling := StatusEmojiTired
	if s.Anger < lowest {
		lowest = s.Anger
		feeling = StatusEmojiAngry
	}
	if s.Happiness < lowest {
		lowest = s.Happiness
		feeling = StatusEmojiSad
	}

	// A sleeping pet is already dealing with low energy.
	if lowest >= LowStatThreshold || (feeling == StatusEmojiTired && s.State.Asleep()) {
		return activity
	}
	return activity + feeling
}

// GetStatusWithLabel returns the status with a text label for the UI.
func GetStatusWithLabel(s Snapshot) string {
	status := GetStatus(s)

	switch s.State {
	case StateSleepingTransition:
		return status + " Falling asleep"
	case StateSleeping:
		return status + " Sleeping"
	case StateWakeup:
		return status + " Waking up"
	case StatePunching:
		return status + " Punching!"
	case StatePlaying:
		return status + " Playing!"
	}

	switch {
	case strings.HasSuffix(status, StatusEmojiTired):
		return status + " Tired"
	case strings.HasSuffix(status, StatusEmojiAngry):
		return status + " Grumpy"
	case strings.HasSuffix(status, StatusEmojiSad):
		return status + " Lonely"
	default:
		return status + " Happy"
	}
}
