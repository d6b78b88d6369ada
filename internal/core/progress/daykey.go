package progress

import "time"

const dayKeyLayout = "2006-01-02"

// DayKey identifies a calendar day. All keys are derived in UTC so that two
// instants compare equal iff they fall on the same UTC calendar day; mixing
// zones would break set membership.
type DayKey string

func NewDayKey(t time.Time) DayKey {
	return DayKey(t.UTC().Format(dayKeyLayout))
}

// Time returns the key's midnight instant in UTC.
func (k DayKey) Time() time.Time {
	t, _ := time.Parse(dayKeyLayout, string(k))
	return t
}

func (k DayKey) AddDays(n int) DayKey {
	return NewDayKey(k.Time().AddDate(0, 0, n))
}

// Before works lexicographically: ISO dates sort chronologically.
func (k DayKey) Before(other DayKey) bool {
	return string(k) < string(other)
}

func (k DayKey) String() string {
	return string(k)
}
