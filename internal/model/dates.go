package model

import "time"

// EndOfMonth returns midnight of the last day of now's month in now's location.
func EndOfMonth(now time.Time) time.Time {
	y, m, _ := now.Date()
	firstNextMonth := time.Date(y, m, 1, 0, 0, 0, 0, now.Location()).AddDate(0, 1, 0)
	return firstNextMonth.AddDate(0, 0, -1)
}
