package heredity

import (
	"database/sql/driver"
	"fmt"
	"time"
)

// Time lets run timestamps be read back from sqlite whether they were
// stored as unixtime or as text. Derived from
// https://github.com/mattn/go-sqlite3/issues/190#issuecomment-343341834f
type Time time.Time

const textTimeLayout = "2006-01-02 15:04:05"

// Scan implements sql.Scanner for unixtime integers, time.Time values and
// text timestamps.
func (t *Time) Scan(v interface{}) error {
	switch which := v.(type) {
	case int64:
		vt := time.Unix(which, 0)
		*t = Time(vt)
		return nil
	case int:
		vt := time.Unix(int64(which), 0)
		*t = Time(vt)
		return nil
	case time.Time:
		*t = Time(which)
		return nil
	case string:
		return t.Scan([]byte(which))
	case []byte:
		// Should be more strictly to check this type.
		vt, err := time.Parse(textTimeLayout, string(which))
		if err != nil {
			return err
		}
		*t = Time(vt)
		return nil
	}

	return fmt.Errorf("No appropriate type could be found to decode %v", v)
}

// Value stores the time as unixtime.
func (t Time) Value() (driver.Value, error) {
	return time.Time(t).Unix(), nil
}

func (t Time) String() string {
	return time.Time(t).Format(textTimeLayout)
}
