package enums

import "fmt"

// TaskStatus tracks a task through its lifecycle.
type TaskStatus string

const (
	TaskStatusPending    TaskStatus = "PENDING"
	TaskStatusInProgress TaskStatus = "IN_PROGRESS"
	TaskStatusCompleted  TaskStatus = "COMPLETED"
)

var validTaskStatuses = []TaskStatus{
	TaskStatusPending,
	TaskStatusInProgress,
	TaskStatusCompleted,
}

func (t TaskStatus) String() string {
	return string(t)
}

func (t TaskStatus) IsValid() bool {
	for _, candidate := range validTaskStatuses {
		if candidate == t {
			return true
		}
	}
	return false
}

func ParseTaskStatus(value string) (TaskStatus, error) {
	for _, candidate := range validTaskStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid task status %q", value)
}
