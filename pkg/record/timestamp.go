package record

import (
	"encoding/json"
	"fmt"
	"time"
)

// layoutISO8601 matches the millisecond precision of the timestamps the
// original browser storage wrote, so existing slots round-trip unchanged.
const layoutISO8601 = "2006-01-02T15:04:05.000Z07:00"

func ParseTime(v string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, v)
	if err != nil {
		return time.Time{}, err
	}
	return t, nil
}

type Timestamp struct {
	time.Time
}

// Stamp returns a Timestamp for now, truncated to milliseconds.
func Stamp(now time.Time) Timestamp {
	return Timestamp{Time: now.Truncate(time.Millisecond)}
}

func (t Timestamp) SameDay(then time.Time) bool {
	return DateOf(t.Local()) == DateOf(then.Local())
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte(`""`), nil
	}
	return []byte(fmt.Sprintf("%q", t.String())), nil
}

func (t *Timestamp) UnmarshalJSON(b []byte) error {
	var timestamp string
	if err := json.Unmarshal(b, &timestamp); err != nil {
		return err
	}
	if timestamp == "" {
		t.Time = time.Time{}
		return nil
	}
	var err error
	t.Time, err = ParseTime(timestamp)
	return err
}

func (t Timestamp) String() string {
	return t.UTC().Format(layoutISO8601)
}
