package shared

import "time"

// AdultAge is the minimum age for linking individual suppliers in restricted regions.
const AdultAge = 18

// AgeOn returns the whole calendar years elapsed between birth and today. A
// birthday falling on today counts as reached.
func AgeOn(birth, today time.Time) int {
	years := today.Year() - birth.Year()
	if today.Month() < birth.Month() || (today.Month() == birth.Month() && today.Day() < birth.Day()) {
		years--
	}
	return years
}
