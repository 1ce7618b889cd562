package domain

type (
	// RiderStatus represents the availability of a rider.
	RiderStatus string
	// ServiceKind represents the marketplace vertical a rider serves.
	ServiceKind string
)

// Rider represents a delivery rider.
type Rider struct {
	ID          int64
	Name        string
	Phone       string
	AreaID      int64
	Status      RiderStatus
	ServiceKind ServiceKind
}

// Candidate is one entry of the ordered list a dispatch offers a delivery to.
// The ranking is decided by the candidate query, not by the sequencer.
type Candidate struct {
	RiderID int64
	Phone   string
	Name    string
}
