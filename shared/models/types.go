package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// Date is a calendar day serialized as YYYY-MM-DD.
type Date struct {
	time.Time
}

func NewDate(year int, month time.Month, day int) Date {
	return Date{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// Today returns the current UTC day.
func Today() Date {
	now := time.Now().UTC()
	return NewDate(now.Year(), now.Month(), now.Day())
}

func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", s)
	}
	return Date{t}, nil
}

func (d Date) String() string {
	return d.Format(dateLayout)
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("date must be a string: %w", err)
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func (d Date) Value() (driver.Value, error) {
	return d.String(), nil
}

func (d *Date) Scan(src any) error {
	switch v := src.(type) {
	case time.Time:
		*d = NewDate(v.Year(), v.Month(), v.Day())
		return nil
	case []byte:
		return d.scanString(string(v))
	case string:
		return d.scanString(v)
	}
	return fmt.Errorf("cannot scan %T into Date", src)
}

func (d *Date) scanString(s string) error {
	if len(s) > len(dateLayout) {
		s = s[:len(dateLayout)]
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Money is an amount in cents, serialized as a decimal string with two
// places ("99.99"), matching a NUMERIC(10,2) column.
type Money int64

// MaxMoney is the largest value a NUMERIC(10,2) column holds.
const MaxMoney Money = 99999999_99

var decimalPattern = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?$`)

var (
	ErrMoneyDigits   = errors.New("Ensure that there are no more than 10 digits in total.")
	ErrMoneyDecimals = errors.New("Ensure that there are no more than 2 decimal places.")
)

// ParseMoney reads a plain decimal such as "12.50" or "1e3". Values that
// do not fit MaxMoney in either sign fail with ErrMoneyDigits.
func ParseMoney(s string) (Money, error) {
	s = strings.TrimSpace(s)
	if !decimalPattern.MatchString(s) {
		return 0, fmt.Errorf("invalid decimal %q", s)
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0, fmt.Errorf("invalid decimal %q", s)
	}
	if math.IsInf(f, 0) || math.Abs(f) > MaxMoney.Float() {
		return 0, ErrMoneyDigits
	}
	mant, _, hasExp := strings.Cut(strings.ToLower(s), "e")
	if _, frac, ok := strings.Cut(mant, "."); ok && len(frac) > 2 && !hasExp {
		return 0, ErrMoneyDecimals
	}
	if cents := f * 100; hasExp && math.Abs(cents-math.Round(cents)) > 1e-6 {
		return 0, ErrMoneyDecimals
	}
	return Money(math.Round(f * 100)), nil
}

func (m Money) String() string {
	sign := ""
	v := uint64(m)
	if m < 0 {
		sign = "-"
		v = -v
	}
	return fmt.Sprintf("%s%d.%02d", sign, v/100, v%100)
}

// Float returns the amount in currency units.
func (m Money) Float() float64 {
	return float64(m) / 100
}

func (m Money) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.String())
}

// UnmarshalJSON accepts both "12.50" and 12.5.
func (m *Money) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	parsed, err := ParseMoney(s)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

func (m Money) Value() (driver.Value, error) {
	return m.String(), nil
}

func (m *Money) Scan(src any) error {
	switch v := src.(type) {
	case []byte:
		return m.scanString(string(v))
	case string:
		return m.scanString(v)
	case float64:
		*m = Money(math.Round(v * 100))
		return nil
	case int64:
		*m = Money(v * 100)
		return nil
	case nil:
		*m = 0
		return nil
	}
	return fmt.Errorf("cannot scan %T into Money", src)
}

func (m *Money) scanString(s string) error {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("invalid numeric %q: %w", s, err)
	}
	*m = Money(math.Round(f * 100))
	return nil
}
