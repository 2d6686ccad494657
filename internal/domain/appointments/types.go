package appointments

type Status string

const (
	StatusScheduled Status = "scheduled"
	StatusCompleted Status = "completed"
	StatusCanceled  Status = "canceled"
	StatusMissed    Status = "missed"
)

func (s Status) Valid() bool {
	switch s {
	case StatusScheduled, StatusCompleted, StatusCanceled, StatusMissed:
		return true
	}
	return false
}

// DisplayStatus es derivado en lectura; nunca se persiste.
type DisplayStatus string

const (
	DisplayScheduled DisplayStatus = "scheduled"
	DisplayToday     DisplayStatus = "today"
	DisplayTomorrow  DisplayStatus = "tomorrow"
	DisplayUpcoming  DisplayStatus = "upcoming"
	DisplayOverdue   DisplayStatus = "overdue"
	DisplayCompleted DisplayStatus = "completed"
	DisplayCanceled  DisplayStatus = "canceled"
	DisplayMissed    DisplayStatus = "missed"
)

type RecurrencePattern string

const (
	RecurrenceDaily   RecurrencePattern = "daily"
	RecurrenceWeekly  RecurrencePattern = "weekly"
	RecurrenceMonthly RecurrencePattern = "monthly"
	RecurrenceYearly  RecurrencePattern = "yearly"
)

func (p RecurrencePattern) Valid() bool {
	switch p {
	case RecurrenceDaily, RecurrenceWeekly, RecurrenceMonthly, RecurrenceYearly:
		return true
	}
	return false
}
