package model

// AdminDashboard is the system-wide snapshot recomputed by the server on every request.
type AdminDashboard struct {
	TotalUsers          int64             `json:"totalUsers"`
	TotalHouseholds     int64             `json:"totalHouseholds"`
	TotalPredictions    int64             `json:"totalPredictions"`
	ActiveSessions      int64             `json:"activeSessions"`
	BlockchainConfirmed int64             `json:"blockchainConfirmed"`
	RecentPredictions   []Prediction      `json:"recentPredictions"`
	SystemHealth        string            `json:"systemHealth"`
	ServiceStatus       map[string]string `json:"serviceStatus"`

	AverageAccuracy     float64 `json:"averageAccuracy,omitempty"`
	TotalEnergyConsumed float64 `json:"totalEnergyConsumed,omitempty"`
	PeakUsageHour       int     `json:"peakUsageHour,omitempty"`
	AvgDailyPredictions float64 `json:"avgDailyPredictions,omitempty"`
	SystemUptime        string  `json:"systemUptime,omitempty"`
	NewUsersToday       int64   `json:"newUsersToday,omitempty"`
	ArchivedHouseholds  int64   `json:"archivedHouseholds,omitempty"`
	PendingBlockchain   int64   `json:"pendingBlockchain,omitempty"`
}

// Healthy reports whether the named service reported a healthy status.
func (d AdminDashboard) Healthy(service string) bool {
	return d.ServiceStatus[service] == "healthy"
}
