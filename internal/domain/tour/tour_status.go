package tour

import "fmt"

// TourStatus represents the lifecycle state of a tour in the catalog.
type TourStatus string

const (
	StatusActive   TourStatus = "active"
	StatusInactive TourStatus = "inactive"
	StatusDeleted  TourStatus = "deleted"
)

// IsValid returns true if the status is a recognized tour status.
func (s TourStatus) IsValid() bool {
	switch s {
	case StatusActive, StatusInactive, StatusDeleted:
		return true
	}
	return false
}

// String returns the string representation of the status.
func (s TourStatus) String() string {
	return string(s)
}

// ParseTourStatus converts a string to a TourStatus, returning an error if invalid.
func ParseTourStatus(s string) (TourStatus, error) {
	status := TourStatus(s)
	if !status.IsValid() {
		return "", fmt.Errorf("invalid tour status: %s", s)
	}
	return status, nil
}
