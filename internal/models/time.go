package models

import (
	"database/sql/driver"
	"time"
)

// CustomTime exists so records scan cleanly from drivers that return
// timestamps either as time.Time or as unix seconds.
type CustomTime struct {
	time.Time
}

func Now() CustomTime {
	return CustomTime{Time: time.Now()}
}

func (c CustomTime) Value() (driver.Value, error) {
	return c.Time, nil
}

func (c *CustomTime) Scan(value interface{}) error {
	switch value := value.(type) {
	case time.Time:
		*c = CustomTime{Time: value}
	case int64:
		*c = CustomTime{Time: time.Unix(value, 0)}
	}

	return nil
}
