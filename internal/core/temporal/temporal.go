// Package temporal derives local calendar attributes from recording start times.
package temporal

import (
	"fmt"
	"time"

	"github.com/neilberkman/recrider/internal/core/models"
)

const (
	DefaultWorkStart = 9
	DefaultWorkEnd   = 18

	localLayout     = "2006-01-02T15:04:05-07:00"
	localLayoutFrac = "2006-01-02T15:04:05.000000-07:00"
)

// WeekdayNames indexed Monday-first, matching the stored weekday column
var WeekdayNames = [7]string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// WorkWindow is the timezone and working-hours configuration used for derivation.
// Start is inclusive, End is exclusive, both on the 24-hour clock.
type WorkWindow struct {
	Location *time.Location
	Start    int
	End      int
}

// DefaultWorkWindow returns the system local timezone with 9-18 working hours
func DefaultWorkWindow() WorkWindow {
	return WorkWindow{
		Location: time.Local,
		Start:    DefaultWorkStart,
		End:      DefaultWorkEnd,
	}
}

// Validate checks the hour bounds
func (w WorkWindow) Validate() error {
	if w.Start < 0 || w.Start > 24 {
		return fmt.Errorf("work start hour %d out of range 0-24", w.Start)
	}
	if w.End < 0 || w.End > 24 {
		return fmt.Errorf("work end hour %d out of range 0-24", w.End)
	}
	if w.Start > w.End {
		return fmt.Errorf("work start hour %d is after end hour %d", w.Start, w.End)
	}
	return nil
}

func (w WorkWindow) location() *time.Location {
	if w.Location == nil {
		return time.Local
	}
	return w.Location
}

// Derive computes the temporal features of a recording.
// A zero start time yields null features and IsWorkingHours=false.
func Derive(startTimeMs int64, w WorkWindow) models.TemporalFeatures {
	if startTimeMs == 0 {
		return models.TemporalFeatures{}
	}

	dt := time.UnixMilli(startTimeMs).In(w.location())

	layout := localLayout
	if startTimeMs%1000 != 0 {
		layout = localLayoutFrac
	}
	local := dt.Format(layout)
	hour := dt.Hour()
	weekday := MondayIndex(dt.Weekday())
	name := WeekdayNames[weekday]

	return models.TemporalFeatures{
		LocalDatetime:  &local,
		Hour:           &hour,
		Weekday:        &weekday,
		WeekdayName:    &name,
		IsWorkingHours: IsWorkingHours(weekday, hour, w),
	}
}

// IsWorkingHours reports whether a Monday-indexed weekday and hour fall inside the window
func IsWorkingHours(weekday, hour int, w WorkWindow) bool {
	return weekday < 5 && w.Start <= hour && hour < w.End
}

// MondayIndex converts Go's Sunday-first weekday to 0=Monday ... 6=Sunday
func MondayIndex(d time.Weekday) int {
	return (int(d) + 6) % 7
}
