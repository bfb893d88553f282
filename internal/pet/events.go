package pet

import "vpet/internal/stats"

// AlertKind identifies one of the user-facing alerts.
type AlertKind int

const (
	AlertExhausted AlertKind = iota
	AlertAngry
	AlertLonely
	AlertSleeping
	AlertTired
	AlertNotTired
)

// AlertDefinition is the message and severity of an alert.
type AlertDefinition struct {
	Kind     AlertKind
	Message  string
	Severity Severity
}

var alertDefinitions = map[AlertKind]AlertDefinition{
	AlertExhausted: {AlertExhausted, "😴 Your pet is exhausted! Let it sleep.", SeverityDanger},
	AlertAngry:     {AlertAngry, "😡 Your pet is angry! Take it for a punch.", SeverityDanger},
	AlertLonely:    {AlertLonely, "😢 Your pet feels lonely! Play with it.", SeverityDanger},
	AlertSleeping:  {AlertSleeping, "🐾 Your pet is sleeping. Wake it up to play or punch!", SeverityWarn},
	AlertTired:     {AlertTired, "😴 Your pet is tired! It's time to sleep.", SeverityWarn},
	AlertNotTired:  {AlertNotTired, "💤 Your pet isn't tired yet!", SeverityInfo},
}

// GetAlertDefinition returns the definition for an alert kind.
func GetAlertDefinition(kind AlertKind) AlertDefinition {
	return alertDefinitions[kind]
}

// thresholdAlert maps a stat to the alert raised when it runs low.
func thresholdAlert(k stats.Kind) AlertKind {
	switch k {
	case stats.Energy:
		return AlertExhausted
	case stats.Anger:
		return AlertAngry
	default:
		return AlertLonely
	}
}
