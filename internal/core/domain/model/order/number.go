package order

import (
	"fmt"
	"strings"
	"time"

	"marketplace/internal/core/domain/model/kernel"
)

// NewOrderNumber builds the human-readable purchase order code:
//
//	PO-D{YYMMDD}-H{HHMM}-C{last4(household or "0000")}-V{last4(vendor)}-{tail}
//
// where tail is the current time in milliseconds modulo 10000, zero-padded.
// The code is time-derived, not collision-free: two orders generated within
// the same millisecond tail can collide. Uniqueness is enforced by the unique
// index on the order number column, not by this generator.
func NewOrderNumber(now time.Time, householdID *kernel.UUID, vendorID kernel.UUID) string {
	householdPart := "0000"
	if householdID != nil {
		householdPart = last4(householdID.String())
	}

	return fmt.Sprintf("PO-D%s-H%s-C%s-V%s-%04d",
		now.Format("060102"),
		now.Format("1504"),
		householdPart,
		last4(vendorID.String()),
		now.UnixMilli()%10000,
	)
}

// last4 returns the last four hex characters of a UUID string.
func last4(s string) string {
	s = strings.ReplaceAll(s, "-", "")
	if len(s) <= 4 {
		return s
	}
	return s[len(s)-4:]
}
