package seasons

import "time"

// Version is a game version with the dates it is live
type Version struct {
	Code  string
	Label string
	Start time.Time
	End   time.Time
}

// Active reports whether t falls within the version's dates
func (v Version) Active(t time.Time) bool {
	return !t.Before(v.Start) && t.Before(v.End.AddDate(0, 0, 1))
}

var versions = []Version{
	{
		Code:  "S15",
		Label: "S15",
		Start: time.Date(2025, time.May, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2025, time.August, 31, 0, 0, 0, 0, time.UTC),
	},
	{
		Code:  "S14",
		Label: "S14",
		Start: time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2025, time.April, 30, 0, 0, 0, 0, time.UTC),
	},
}

// Versions returns the known versions, newest first
func Versions() []Version {
	out := make([]Version, len(versions))
	copy(out, versions)
	return out
}

// LatestVersion returns the newest known version
func LatestVersion() Version {
	return versions[0]
}
