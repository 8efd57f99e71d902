package core

// Status is the progress stage of a refund or warranty claim.
type Status string

const (
	StatusPlanned    Status = "Planned"
	StatusInProgress Status = "In Progress"
	StatusComplete   Status = "Complete"
)

// ValidStatus reports whether s is one of the three known stages.
func ValidStatus(s Status) bool {
	switch s {
	case StatusPlanned, StatusInProgress, StatusComplete:
		return true
	}
	return false
}

// Display returns the stage to show for s. Unknown values render as
// Planned, but the stored value is kept verbatim so nothing is lost
// if a later version understands it.
func (s Status) Display() Status {
	if ValidStatus(s) {
		return s
	}
	return StatusPlanned
}
