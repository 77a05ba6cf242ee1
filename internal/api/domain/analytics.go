package domain

import "time"

type PageView struct {
	ID        string
	Path      string
	Referrer  string
	CreatedAt time.Time
}

// DayCount is the number of page views on one UTC day (YYYY-MM-DD).
type DayCount struct {
	Day   string
	Count int
}

// PathCount is the number of page views for one path.
type PathCount struct {
	Path  string
	Count int
}

// AnalyticsOverview summarises page views over a trailing window.
type AnalyticsOverview struct {
	Total    int
	PerDay   []DayCount
	TopPaths []PathCount
}
