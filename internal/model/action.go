package model

// Action is a human-friendly operating mode for one simulated hour.
// Keep these values stable; they are intended for CSV output.
type Action string

const (
	ActionCharging    Action = "CHARGING"
	ActionIdle        Action = "IDLE"
	ActionDischarging Action = "DISCHARGING"
	ActionDiesel      Action = "DIESEL"
)

// ActionForHour labels an hour by its most expensive active source:
// diesel wins over battery discharge, which wins over charging.
func ActionForHour(chargeKW, dischargeKW, dieselKW float64) Action {
	switch {
	case dieselKW > 0:
		return ActionDiesel
	case dischargeKW > 0:
		return ActionDischarging
	case chargeKW > 0:
		return ActionCharging
	default:
		return ActionIdle
	}
}
