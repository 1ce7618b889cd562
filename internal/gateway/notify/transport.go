package notify

import (
	"context"
	"fmt"
	"strconv"
	"strings"
)

// Offer carries the delivery context for the driver-facing message. The
// message text built from it is opaque to the dispatch sequencer.
type Offer struct {
	DeliveryID int64
	RiderName  string
	Area       string
}

// Transport delivers an offer message to a rider's phone.
type Transport interface {
	Send(ctx context.Context, phone string, offer Offer) error
}

// SendError is a transport failure carrying the provider HTTP status.
type SendError struct {
	StatusCode int
	Message    string
}

func (e *SendError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("notify: send failed with status %d", e.StatusCode)
	}
	return fmt.Sprintf("notify: send failed with status %d: %s", e.StatusCode, e.Message)
}

// offerBody renders the driver-facing message text.
func offerBody(o Offer) string {
	var b strings.Builder
	b.WriteString("New delivery #")
	b.WriteString(strconv.FormatInt(o.DeliveryID, 10))
	if o.Area != "" {
		b.WriteString(" in ")
		b.WriteString(o.Area)
	}
	b.WriteString(". Reply YES within 60 seconds to accept.")
	return b.String()
}

// FormatWhatsApp converts a normalized phone number into the transport's
// addressing shape.
func FormatWhatsApp(phone string) string {
	phone = strings.TrimSpace(phone)
	if strings.HasPrefix(strings.ToLower(phone), "whatsapp:") {
		return "whatsapp:" + strings.TrimSpace(phone[len("whatsapp:"):])
	}
	return "whatsapp:" + phone
}
