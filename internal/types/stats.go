package types

// RecentWindowDays is the trailing window used for the recent applications count.
const RecentWindowDays = 7

// Stats is the dashboard snapshot. The four counts are taken independently.
type Stats struct {
	TotalJobs          int64 `json:"total_jobs"`
	TotalApplications  int64 `json:"total_applications"`
	TotalUsers         int64 `json:"total_users"`
	RecentApplications int64 `json:"recent_applications"`
}
