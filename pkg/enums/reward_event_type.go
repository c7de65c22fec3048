package enums

import "fmt"

// RewardEventType classifies entries in the points ledger.
type RewardEventType string

const (
	RewardEventTaskCompleted RewardEventType = "TASK_COMPLETED"
	RewardEventHabitLogged   RewardEventType = "HABIT_LOGGED"
	RewardEventVideoVerified RewardEventType = "VIDEO_VERIFIED"
	RewardEventConversion    RewardEventType = "CONVERSION"
)

var validRewardEventTypes = []RewardEventType{
	RewardEventTaskCompleted,
	RewardEventHabitLogged,
	RewardEventVideoVerified,
	RewardEventConversion,
}

func (r RewardEventType) String() string {
	return string(r)
}

func (r RewardEventType) IsValid() bool {
	for _, candidate := range validRewardEventTypes {
		if candidate == r {
			return true
		}
	}
	return false
}

func ParseRewardEventType(value string) (RewardEventType, error) {
	for _, candidate := range validRewardEventTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid reward event type %q", value)
}
