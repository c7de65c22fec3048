package enums

import "fmt"

// HabitFrequency is the cadence a habit is expected to be logged at.
type HabitFrequency string

const (
	HabitFrequencyDaily  HabitFrequency = "DAILY"
	HabitFrequencyWeekly HabitFrequency = "WEEKLY"
)

var validHabitFrequencies = []HabitFrequency{
	HabitFrequencyDaily,
	HabitFrequencyWeekly,
}

func (h HabitFrequency) String() string {
	return string(h)
}

func (h HabitFrequency) IsValid() bool {
	for _, candidate := range validHabitFrequencies {
		if candidate == h {
			return true
		}
	}
	return false
}

func ParseHabitFrequency(value string) (HabitFrequency, error) {
	for _, candidate := range validHabitFrequencies {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid habit frequency %q", value)
}
