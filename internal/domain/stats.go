package domain

// Streak is a run of consecutive days with at least one contribution.
// Start and End are empty when Length is zero.
type Streak struct {
	Length int    `json:"length"`
	Start  string `json:"start,omitempty"`
	End    string `json:"end,omitempty"`
}

// MonthTotal is the sum of counts for one calendar month across the input days.
type MonthTotal struct {
	Month         int `json:"month"`
	Contributions int `json:"contributions"`
}

// Metrics holds derived statistics over a list of days.
type Metrics struct {
	Days          int          `json:"days"`
	ActiveDays    int          `json:"active_days"`
	Contributions int          `json:"contributions"`
	LongestStreak Streak       `json:"longest_streak"`
	CurrentStreak Streak       `json:"current_streak"`
	FirstActive   *DayRecord   `json:"first_active,omitempty"`
	MostActive    *DayRecord   `json:"most_active,omitempty"`
	Monthly       []MonthTotal `json:"monthly"`
	DailyMean     float64      `json:"daily_mean"`
	DailyMedian   float64      `json:"daily_median"`
	// DailyP90 is the 90th percentile of daily counts, linearly interpolated
	// between the two closest ranks rather than taken by nearest rank.
	DailyP90      float64      `json:"daily_p90"`
	DailyMax      float64      `json:"daily_max"`
}
