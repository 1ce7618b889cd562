package domain

import "time"

// DeliveryStatus represents the lifecycle status of a delivery.
type DeliveryStatus string

// Delivery - struct representing a delivery to be offered to riders.
type Delivery struct {
	ID          int64
	AreaID      int64
	ServiceKind ServiceKind
	RiderID     *int64
	Status      DeliveryStatus
	CreatedAt   time.Time
}

// Unassigned reports whether the delivery has no rider yet.
func (d Delivery) Unassigned() bool {
	return d.RiderID == nil
}

// PhoneMapping is the durable phone -> delivery correlation record used to
// resolve an inbound acceptance back to the offered delivery. A stale row is
// overwritten by the next offer to the same phone, never deleted; ExpiresAt
// is the cleanup mechanism.
type PhoneMapping struct {
	Phone      string
	DeliveryID int64
	ExpiresAt  time.Time
}

// Live reports whether the mapping may still resolve an acceptance.
func (m PhoneMapping) Live(now time.Time) bool {
	return now.Before(m.ExpiresAt)
}

// AcceptResult - struct representing a resolved acceptance.
type AcceptResult struct {
	DeliveryID int64
	RiderID    int64
}

// DispatchResult - struct representing the outcome of starting a dispatch.
type DispatchResult struct {
	DeliveryID int64
	Candidates int
}
