package tenor

import (
	"strconv"
	"time"

	"github.com/iov-one/tenor/errors"
)

// UnixTime represents a point in time as POSIX time in seconds.
type UnixTime int64

// AsUnixTime converts time.Time into UnixTime with second precision.
func AsUnixTime(t time.Time) UnixTime {
	return UnixTime(t.Unix())
}

// Time returns the time.Time representation of this value.
func (t UnixTime) Time() time.Time {
	return time.Unix(int64(t), 0)
}

// Add returns the time shifted by the given duration. Precision below a
// second is dropped.
func (t UnixTime) Add(d time.Duration) UnixTime {
	return t + UnixTime(d/time.Second)
}

// Validate ensures this is a usable time value.
func (t UnixTime) Validate() error {
	if t < 0 {
		return errors.Wrap(errors.ErrState, "negative time value")
	}
	return nil
}

func (t UnixTime) String() string {
	return t.Time().UTC().String()
}

// UnmarshalJSON supports both number (unix seconds) and RFC 3339 string
// representations.
func (t *UnixTime) UnmarshalJSON(raw []byte) error {
	var value int64
	if err := unmarshalJSONTime(raw, &value); err != nil {
		return err
	}
	*t = UnixTime(value)
	return nil
}

// MarshalJSON writes the time as unix seconds.
func (t UnixTime) MarshalJSON() ([]byte, error) {
	return []byte(strconv.FormatInt(int64(t), 10)), nil
}

func unmarshalJSONTime(raw []byte, dest *int64) error {
	if len(raw) == 0 {
		return errors.Wrap(errors.ErrInput, "empty time value")
	}
	if raw[0] == '"' {
		val, err := time.Parse(`"`+time.RFC3339+`"`, string(raw))
		if err != nil {
			return errors.Wrap(errors.ErrInput, err.Error())
		}
		*dest = val.Unix()
		return nil
	}
	val, err := strconv.ParseInt(string(raw), 10, 64)
	if err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	*dest = val
	return nil
}
