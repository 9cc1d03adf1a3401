package models

// Tutee owns exactly one Schedule; deleting the tutee must delete the
// schedule first, since the schedule is only addressable through the tutee's
// stored reference.
type Tutee struct {
	ID         string
	FirstName  string
	LastName   string
	IDNumber   int
	Email      string
	Campus     string
	College    string
	Course     string
	Contact    string
	URL        string
	Friends    []string
	ScheduleID string
}

// Schedule holds per-day availability slots such as "W 0800-1100".
type Schedule struct {
	ID    string
	Slots []string
}
