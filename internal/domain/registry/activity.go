package registry

import "time"

// CivilDate truncates t to its calendar day in t's location.
func CivilDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ValidDateWindow is false only when both bounds are set and end precedes start.
func ValidDateWindow(start, end *time.Time) bool {
	if start == nil || end == nil {
		return true
	}
	return !CivilDate(*end).Before(CivilDate(*start))
}

// MembershipActive is true when end is absent or not before today.
func MembershipActive(end *time.Time, today time.Time) bool {
	if end == nil {
		return true
	}
	return !CivilDate(*end).Before(CivilDate(today))
}

// MandateActive applies the membership rule unless the mandate is suspended.
func MandateActive(end *time.Time, suspended bool, today time.Time) bool {
	if suspended {
		return false
	}
	return MembershipActive(end, today)
}
