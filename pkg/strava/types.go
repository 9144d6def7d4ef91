package strava

// wire types for the Strava v3 API (only the fields the planner uses)

type Athlete struct {
	ID        int64   `json:"id"`
	Firstname string  `json:"firstname"`
	Lastname  string  `json:"lastname"`
	Username  string  `json:"username"`
	City      string  `json:"city"`
	State     string  `json:"state"`
	Country   string  `json:"country"`
	Sex       string  `json:"sex"`
	Weight    float64 `json:"weight"` // kg
	Profile   string  `json:"profile"`
}

type ActivityTotal struct {
	Count         int     `json:"count"`
	Distance      float64 `json:"distance"`    // meters
	MovingTime    int64   `json:"moving_time"` // seconds
	ElapsedTime   int64   `json:"elapsed_time"`
	ElevationGain float64 `json:"elevation_gain"` // meters
}

type ActivityStats struct {
	RecentRideTotals ActivityTotal `json:"recent_ride_totals"`
	RecentRunTotals  ActivityTotal `json:"recent_run_totals"`
	RecentSwimTotals ActivityTotal `json:"recent_swim_totals"`
	YtdRideTotals    ActivityTotal `json:"ytd_ride_totals"`
	YtdRunTotals     ActivityTotal `json:"ytd_run_totals"`
	YtdSwimTotals    ActivityTotal `json:"ytd_swim_totals"`
	AllRideTotals    ActivityTotal `json:"all_ride_totals"`
	AllRunTotals     ActivityTotal `json:"all_run_totals"`
	AllSwimTotals    ActivityTotal `json:"all_swim_totals"`
}

type tokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresAt    int64  `json:"expires_at"` // unix seconds
}
