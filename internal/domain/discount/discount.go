package discount

import (
	"fmt"
	"time"
)

const (
	// MinPercentage is the smallest percentage a discount may carry.
	MinPercentage = 1
	// MaxPercentage is the largest percentage a discount may carry.
	MaxPercentage = 100

	// MinDuration is the shortest window a discount may be active for.
	MinDuration = time.Hour
	// MaxBackdate bounds how far in the past a new discount may start.
	MaxBackdate = 24 * time.Hour
)

// ValidationError reports a malformed discount, sale or coupon definition.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// Discount is a time-boxed percentage reduction.
type Discount struct {
	Percentage   int
	Description  string
	StartingDate time.Time
	EndingDate   time.Time
}

// New validates and returns a Discount. The starting date is checked
// against now, so a discount loaded from storage should be rebuilt with
// Restore instead.
func New(now time.Time, percentage int, description string, start, end time.Time) (Discount, error) {
	d := Restore(percentage, description, start, end)
	if err := d.validate(); err != nil {
		return Discount{}, err
	}
	if start.Before(now.Add(-MaxBackdate)) {
		return Discount{}, &ValidationError{
			Field:  "starting date",
			Reason: "must not be earlier than one day ago",
		}
	}
	return d, nil
}

// Restore rebuilds a previously validated Discount without checking the
// creation-time backdate rule.
func Restore(percentage int, description string, start, end time.Time) Discount {
	return Discount{
		Percentage:   percentage,
		Description:  description,
		StartingDate: start,
		EndingDate:   end,
	}
}

func (d Discount) validate() error {
	if d.Percentage < MinPercentage || d.Percentage > MaxPercentage {
		return &ValidationError{
			Field:  "percentage",
			Reason: fmt.Sprintf("%d is outside [%d, %d]", d.Percentage, MinPercentage, MaxPercentage),
		}
	}
	if d.EndingDate.Before(d.StartingDate.Add(MinDuration)) {
		return &ValidationError{
			Field:  "ending date",
			Reason: "must be at least one hour after the starting date",
		}
	}
	return nil
}

// IsValidToDate reports whether now falls inside the discount window,
// both ends inclusive.
func (d Discount) IsValidToDate(now time.Time) bool {
	return !now.Before(d.StartingDate) && !now.After(d.EndingDate)
}
