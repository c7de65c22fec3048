package enums

import "fmt"

// VerificationStatus is the recorded outcome of a submission.
type VerificationStatus string

const (
	VerificationStatusPending  VerificationStatus = "PENDING"
	VerificationStatusVerified VerificationStatus = "VERIFIED"
	VerificationStatusRejected VerificationStatus = "REJECTED"
)

var validVerificationStatuses = []VerificationStatus{
	VerificationStatusPending,
	VerificationStatusVerified,
	VerificationStatusRejected,
}

func (v VerificationStatus) String() string {
	return string(v)
}

func (v VerificationStatus) IsValid() bool {
	for _, candidate := range validVerificationStatuses {
		if candidate == v {
			return true
		}
	}
	return false
}

func ParseVerificationStatus(value string) (VerificationStatus, error) {
	for _, candidate := range validVerificationStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid verification status %q", value)
}
