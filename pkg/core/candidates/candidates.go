package candidates

import (
	"time"

	"github.com/duartecruz/weekend-picker/pkg/core/model"
)

// WeekendCandidate is one Friday-Sunday weekend fully inside the search
// window. Days holds the Friday, Saturday and Sunday in order.
type WeekendCandidate struct {
	StartDate time.Time // Friday
	EndDate   time.Time // Sunday, StartDate + 2 days
	Days      [3]time.Time
}

// firstFridayOnOrAfter returns the first Friday on or after the given date.
func firstFridayOnOrAfter(from time.Time) time.Time {
	normalized := model.Midnight(from)
	dayOffset := (int(time.Friday) - int(normalized.Weekday()) + 7) % 7
	return normalized.AddDate(0, 0, dayOffset)
}

// Generate enumerates all Friday-Sunday candidates whose Friday and Sunday
// both lie inside the inclusive [minDate, maxDate] window, ascending by
// start date. Windows too short to hold a full weekend yield an empty
// slice, not an error. The ascending order is a contract: ranking relies
// on it for deterministic tie-breaking.
func Generate(minDate, maxDate time.Time) []WeekendCandidate {
	minDate = model.Midnight(minDate)
	maxDate = model.Midnight(maxDate)

	weekends := []WeekendCandidate{}
	for friday := firstFridayOnOrAfter(minDate); !friday.After(maxDate); friday = friday.AddDate(0, 0, 7) {
		saturday := friday.AddDate(0, 0, 1)
		sunday := friday.AddDate(0, 0, 2)

		if sunday.After(maxDate) {
			break
		}

		// Never emit a Friday before the window, whatever the offset
		// arithmetic produced.
		if friday.Before(minDate) {
			continue
		}

		weekends = append(weekends, WeekendCandidate{
			StartDate: friday,
			EndDate:   sunday,
			Days:      [3]time.Time{friday, saturday, sunday},
		})
	}

	return weekends
}
