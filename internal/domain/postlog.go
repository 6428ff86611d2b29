package domain

// DailyPostLog counts successful posts for one calendar day.
type DailyPostLog struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// ForDate returns the log for date, resetting the count when the day changed.
func (l DailyPostLog) ForDate(date string) DailyPostLog {
	if l.Date != date {
		return DailyPostLog{Date: date}
	}
	return l
}

// CapReached is false when no cap is configured.
func (l DailyPostLog) CapReached(cap int) bool {
	return cap > 0 && l.Count >= cap
}
