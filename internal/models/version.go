package models

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"regexp"
	"strings"
)

var versionPattern = regexp.MustCompile(`^\d+$`)

// Version is a migration version: a string of digits, usually zero-padded
// so that file names sort lexically in application order. Comparison is
// numeric, so "2" and "002" are equal.
type Version string

func (v Version) Value() (driver.Value, error) {
	return string(v), nil
}

func (v *Version) Scan(value interface{}) error {
	switch value := value.(type) {
	case string:
		*v = Version(value)
	case []byte:
		*v = Version(value)
	default:
		return errors.New("invalid type")
	}
	return nil
}

func (v Version) String() string {
	return string(v)
}

// canonical strips leading zeros so numeric comparison reduces to a
// length check followed by a string compare.
func (v Version) canonical() string {
	trimmed := strings.TrimLeft(string(v), "0")
	if trimmed == "" {
		return "0"
	}
	return trimmed
}

func (v Version) Equals(version Version) bool {
	return v.canonical() == version.canonical()
}

func (v Version) MoreThan(version Version) bool {
	left, right := v.canonical(), version.canonical()
	if len(left) != len(right) {
		return len(left) > len(right)
	}
	return left > right
}

func (v Version) MoreOrEqual(version Version) bool {
	return v.MoreThan(version) || v.Equals(version)
}

func (v Version) LessThan(version Version) bool {
	return !v.MoreOrEqual(version)
}

func (v Version) LessOrEqual(version Version) bool {
	return !v.MoreThan(version)
}

func ParseVersion(versionString string) (Version, error) {
	if !versionPattern.MatchString(versionString) {
		return "", fmt.Errorf("invalid version format: %q, digits only", versionString)
	}
	return Version(versionString), nil
}
