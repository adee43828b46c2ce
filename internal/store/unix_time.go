// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"database/sql/driver"
	"fmt"
	"strconv"
	"time"
)

// UnixTime stores a time.Time as whole seconds since the epoch.
type UnixTime time.Time

// Value implements driver.Valuer.
func (t UnixTime) Value() (driver.Value, error) {
	return time.Time(t).Unix(), nil
}

// Scan implements sql.Scanner.
func (t *UnixTime) Scan(src any) error {
	switch v := src.(type) {
	case int64:
		*t = UnixTime(time.Unix(v, 0))
	case time.Time:
		*t = UnixTime(v)
	case []byte:
		return t.parse(string(v))
	case string:
		return t.parse(v)
	case nil:
		*t = UnixTime(time.Time{})
	default:
		return fmt.Errorf("store: cannot scan %T into UnixTime", src)
	}
	return nil
}

func (t *UnixTime) parse(s string) error {
	secs, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return fmt.Errorf("store: cannot parse %q as unix seconds: %w", s, err)
	}
	*t = UnixTime(time.Unix(secs, 0))
	return nil
}
