package enums

import "fmt"

// VerificationKind identifies the evidence attached to a verification.
type VerificationKind string

const (
	VerificationKindVideo  VerificationKind = "VIDEO"
	VerificationKindManual VerificationKind = "MANUAL"
)

var validVerificationKinds = []VerificationKind{
	VerificationKindVideo,
	VerificationKindManual,
}

// String returns the literal string for the kind.
func (v VerificationKind) String() string {
	return string(v)
}

// IsValid reports whether the kind is known.
func (v VerificationKind) IsValid() bool {
	for _, candidate := range validVerificationKinds {
		if candidate == v {
			return true
		}
	}
	return false
}

// ParseVerificationKind converts raw input into a VerificationKind.
func ParseVerificationKind(value string) (VerificationKind, error) {
	for _, candidate := range validVerificationKinds {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid verification kind %q", value)
}
