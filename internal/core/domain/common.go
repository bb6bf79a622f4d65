package domain

import "time"

// AuditFields holds standard audit information for domain entities.
type AuditFields struct {
	CreatedAt     time.Time `json:"createdAt"`
	CreatedBy     string    `json:"createdBy"` // UserID Reference
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
	LastUpdatedBy string    `json:"lastUpdatedBy"` // UserID Reference
}

// TimeMode is the slot granularity of a reservation.
type TimeMode string

const (
	DayTime   TimeMode = "DAY_TIME"
	NightTime TimeMode = "NIGHT_TIME"
	WholeDay  TimeMode = "WHOLE_DAY" // bookings only
)

// OppositeMode returns the sibling partial mode. WholeDay has no opposite and
// is returned unchanged.
func OppositeMode(m TimeMode) TimeMode {
	switch m {
	case DayTime:
		return NightTime
	case NightTime:
		return DayTime
	default:
		return m
	}
}

// CancelCategory classifies why a reservation was cancelled or a date blocked.
type CancelCategory string

const (
	CancelNaturalDisaster CancelCategory = "NATURAL_DISASTER"
	CancelOthers          CancelCategory = "OTHERS"
	CancelMaintenance     CancelCategory = "MAINTENANCE"
	CancelHoliday         CancelCategory = "HOLIDAY"
	CancelInternalUse     CancelCategory = "INTERNAL_USE"
)

// SameCalendarDate reports whether a and b fall on the same calendar date (UTC).
func SameCalendarDate(a, b time.Time) bool {
	ay, am, ad := a.UTC().Date()
	by, bm, bd := b.UTC().Date()
	return ay == by && am == bm && ad == bd
}
