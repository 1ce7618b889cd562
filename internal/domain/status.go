package domain

import "regexp"

// List of possible rider statuses
const (
	RiderAvailable RiderStatus = "available"
	RiderBusy      RiderStatus = "busy"
	RiderOffline   RiderStatus = "offline"
)

// List of possible delivery statuses
const (
	DeliveryCreated   DeliveryStatus = "created"
	DeliveryAssigned  DeliveryStatus = "assigned"
	DeliveryCanceled  DeliveryStatus = "canceled"
	DeliveryCompleted DeliveryStatus = "completed"
)

// List of marketplace verticals
const (
	KindFood        ServiceKind = "food"
	KindGrocery     ServiceKind = "grocery"
	KindMedicine    ServiceKind = "medicine"
	KindAppointment ServiceKind = "appointment"
	KindRide        ServiceKind = "ride"
)

var allowedRiderStatuses = [...]RiderStatus{
	RiderAvailable, RiderBusy, RiderOffline,
}

var allowedServiceKinds = [...]ServiceKind{
	KindFood, KindGrocery, KindMedicine, KindAppointment, KindRide,
}

// Valid checks if the RiderStatus is valid
func (s RiderStatus) Valid() bool {
	for _, v := range allowedRiderStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// Valid checks if the ServiceKind is valid
func (k ServiceKind) Valid() bool {
	for _, v := range allowedServiceKinds {
		if k == v {
			return true
		}
	}
	return false
}

// rePhone is a regex to validate normalized phone numbers
var rePhone = regexp.MustCompile(`^\+[0-9]{10,15}$`)

// ValidatePhone validates the normalized phone number format
func ValidatePhone(s string) bool {
	return rePhone.MatchString(s)
}
