package utils

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Display codes shown to customers and support staff. The uuid fragment is
// enough to be unique in practice; the prefix tells humans what they are
// looking at.

func NewTicketCode() string {
	return "TKT-" + strings.ToUpper(uuid.New().String()[:10])
}

func NewBookingCode() string {
	return "BKG-" + strings.ToUpper(uuid.New().String()[:8])
}

func NewPaymentCode() string {
	return fmt.Sprintf("PAY_%s_%s", time.Now().Format("20060102"), strings.ToUpper(uuid.New().String()[:6]))
}
