package model

type TypeTotal struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Code  string `json:"code"`
	Total int    `json:"total"`
}

type DailyTotal struct {
	Day   string `json:"day"`
	Total int    `json:"total"`
}

type DashboardCounts struct {
	Users                int `json:"users"`
	Violations           int `json:"violations"`
	Observations         int `json:"observations"`
	ViolationTypesActive int `json:"violation_types_active"`
	VehicleTypesActive   int `json:"vehicle_types_active"`
}

type DashboardSummary struct {
	Counts             DashboardCounts `json:"counts"`
	RecentViolations   []Violation     `json:"recent_violations"`
	RecentObservations []Observation   `json:"recent_observations"`
}
