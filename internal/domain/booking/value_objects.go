package booking

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNegativeMoney   = errors.New("money cannot be negative")
	ErrInvalidContact  = errors.New("invalid customer contact")
	ErrInvalidBookDate = errors.New("invalid booking date")
)

// Money is an amount in paise. Keeping integer minor units end to end means
// rounding happens exactly once, inside the tax computation.
type Money struct {
	paise int64
}

func NewMoney(paise int64) (Money, error) {
	if paise < 0 {
		return Money{}, ErrNegativeMoney
	}
	return Money{paise: paise}, nil
}

func MustMoney(paise int64) Money {
	m, err := NewMoney(paise)
	if err != nil {
		panic(err)
	}
	return m
}

func (m Money) Paise() int64 {
	return m.paise
}

func (m Money) Add(other Money) Money {
	return Money{paise: m.paise + other.paise}
}

// MulDuration scales an hourly rate by a duration, rounding half up to the
// nearest paisa.
func (m Money) MulDuration(d Duration) Money {
	return Money{paise: (m.paise*int64(d.Minutes()) + 30) / 60}
}

// Percent applies p% rounding half up, used for the GST line.
func (m Money) Percent(p int64) Money {
	return Money{paise: (m.paise*p + 50) / 100}
}

// String renders rupees with two decimals, e.g. "1593.00".
func (m Money) String() string {
	return fmt.Sprintf("%d.%02d", m.paise/100, m.paise%100)
}

func (m Money) LessThan(other Money) bool {
	return m.paise < other.paise
}

var phonePattern = regexp.MustCompile(`^\+?[0-9][0-9 ]{8,14}$`)

// Contact identifies the customer on a booking. Offline walk-ins have no
// account, so this is the only handle the owner gets.
type Contact struct {
	name  string
	phone string
}

func NewContact(name, phone string) (Contact, error) {
	name = strings.TrimSpace(name)
	phone = strings.TrimSpace(phone)
	if name == "" || !phonePattern.MatchString(phone) {
		return Contact{}, ErrInvalidContact
	}
	return Contact{name: name, phone: phone}, nil
}

func (c Contact) Name() string  { return c.name }
func (c Contact) Phone() string { return c.phone }

// BookingNumber follows the original numbering, e.g. CBK-20260127-8F2A1C.
type BookingNumber string

func NewBookingNumber(now time.Time) BookingNumber {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", "")[:6])
	return BookingNumber(fmt.Sprintf("CBK-%s-%s", now.Format("20060102"), suffix))
}

func (n BookingNumber) String() string {
	return string(n)
}

// Date is the calendar day a booking occupies, timezone-agnostic.
type Date struct {
	year  int
	month time.Month
	day   int
}

func NewDate(year int, month time.Month, day int) (Date, error) {
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	if t.Year() != year || t.Month() != month || t.Day() != day {
		return Date{}, ErrInvalidBookDate
	}
	return Date{year: year, month: month, day: day}, nil
}

func ParseDate(value string) (Date, error) {
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return Date{}, ErrInvalidBookDate
	}
	return Date{year: t.Year(), month: t.Month(), day: t.Day()}, nil
}

func DateOf(t time.Time) Date {
	return Date{year: t.Year(), month: t.Month(), day: t.Day()}
}

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.year, d.month, d.day)
}

func (d Date) Time() time.Time {
	return time.Date(d.year, d.month, d.day, 0, 0, 0, 0, time.UTC)
}

// IsWeekend drives the weekend rate: Saturday and Sunday.
func (d Date) IsWeekend() bool {
	wd := d.Time().Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

func (d Date) Before(other Date) bool {
	return d.Time().Before(other.Time())
}

func (d Date) Equal(other Date) bool {
	return d == other
}
