package models

import (
	"time"
)

// HealthResponse represents the health check response
type HealthResponse struct {
	Status           string `json:"status"`
	Message          string `json:"message,omitempty"`
	Service          string `json:"service,omitempty"`
	Timestamp        string `json:"timestamp,omitempty"`
	ConnectedClients int    `json:"connected_clients,omitempty"`
}

// Report represents a rescue case as stored by the backend. Timestamps are
// RFC3339 strings; UpdatedAt is empty until the first mutation.
type Report struct {
	ID                int64    `json:"id"`
	Status            string   `json:"status"`
	Condition         string   `json:"condition"`
	Description       string   `json:"description"`
	Location          string   `json:"location"`
	Latitude          *float64 `json:"latitude,omitempty"`
	Longitude         *float64 `json:"longitude,omitempty"`
	ContactName       string   `json:"contact_name"`
	ContactPhone      string   `json:"contact_phone"`
	Priority          string   `json:"priority"`
	PhotoURL          *string  `json:"photo_url,omitempty"`
	AssignedTeamName  *string  `json:"assigned_team_name,omitempty"`
	AssignedTeamPhone *string  `json:"assigned_team_phone,omitempty"`
	FieldReview       *string  `json:"field_review,omitempty"`
	RescuedLocation   *string  `json:"rescued_location,omitempty"`
	ReporterID        int64    `json:"reporter_id,omitempty"`
	CreatedAt         string   `json:"created_at"`
	UpdatedAt         string   `json:"updated_at,omitempty"`
}

// User represents an account record. Only read here; account management
// belongs to the auth service.
type User struct {
	ID        int64  `json:"id"`
	FullName  string `json:"full_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone,omitempty"`
	Role      string `json:"role"`
	CreatedAt string `json:"created_at"`
}

// FilterCriteria carries one dashboard recomputation request. Every field is
// optional; zero values mean "no constraint".
type FilterCriteria struct {
	// Status is "all", an exact status value, or the group sentinel
	// "in_progress" which matches both active and in_progress.
	Status    string `form:"status" json:"status"`
	StartDate string `form:"start_date" json:"start_date"`
	EndDate   string `form:"end_date" json:"end_date"`
	Search    string `form:"q" json:"q"`
}

// ReportProjection is the display-ready view of a report. It contains no
// behavior; consumers turn it into markup.
type ReportProjection struct {
	IDLabel        string  `json:"id_label"`
	StatusLabel    string  `json:"status_label"`
	StatusGroup    string  `json:"status_group"`
	BadgeClass     string  `json:"badge_class"`
	ProgressSteps  [3]bool `json:"progress_steps"`
	TimestampLabel string  `json:"timestamp_label"`
}

// ReportView pairs a report with its projection for one audience.
type ReportView struct {
	Report     Report           `json:"report"`
	Projection ReportProjection `json:"projection"`
}

// ReportsResponse is the reports listing payload: the ordered visible subset
// plus counts recomputed over that subset.
type ReportsResponse struct {
	Reports         []ReportView `json:"reports"`
	Total           int          `json:"total"`
	InProgressCount int          `json:"in_progress_count"`
	ResolvedCount   int          `json:"resolved_count"`
}

// TrackingResponse is the public tracking payload for a single report.
type TrackingResponse struct {
	Report     Report           `json:"report"`
	Projection ReportProjection `json:"projection"`
	Message    string           `json:"message"`
}

// UsersResponse is the admin users listing payload.
type UsersResponse struct {
	Users []User `json:"users"`
	Total int    `json:"total"`
}

// ReportStats aggregates report counts for the admin dashboard. Active and
// in_progress are collapsed into one in-progress bucket.
type ReportStats struct {
	Total      int `json:"total"`
	Received   int `json:"received"`
	InProgress int `json:"in_progress"`
	Resolved   int `json:"resolved"`
}

// UserStats aggregates user counts for the admin dashboard.
type UserStats struct {
	Total      int `json:"total"`
	Volunteers int `json:"volunteers"`
}

// StatsResponse is the admin stats payload.
type StatsResponse struct {
	Reports ReportStats `json:"reports"`
	Users   UserStats   `json:"users"`
}

// StatusUpdateArgs is the status mutation request body.
type StatusUpdateArgs struct {
	Status          string  `json:"status" binding:"required"`
	FieldReview     *string `json:"field_review,omitempty"`
	RescuedLocation *string `json:"rescued_location,omitempty"`
}

// CreateReportArgs is the report submission request body. The photo URL is an
// opaque pass-through; storage happens elsewhere.
type CreateReportArgs struct {
	Condition    string   `json:"condition" binding:"required"`
	Description  string   `json:"description"`
	Location     string   `json:"location" binding:"required"`
	Latitude     *float64 `json:"latitude,omitempty"`
	Longitude    *float64 `json:"longitude,omitempty"`
	ContactName  string   `json:"contact_name" binding:"required"`
	ContactPhone string   `json:"contact_phone" binding:"required"`
	Priority     string   `json:"priority"`
	PhotoURL     *string  `json:"photo_url,omitempty"`
}

// MapViewport is the visible map area for pin clustering.
type MapViewport struct {
	LatMin float64 `form:"latmin" json:"latmin"`
	LonMin float64 `form:"lonmin" json:"lonmin"`
	LatMax float64 `form:"latmax" json:"latmax"`
	LonMax float64 `form:"lonmax" json:"lonmax"`
}

// MapPin is either a single report location (Count == 1, ReportID set) or a
// cluster centroid (Count > 1).
type MapPin struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Count     int64   `json:"count"`
	ReportID  int64   `json:"report_id,omitempty"`
}

// MapResponse is the impact map payload.
type MapResponse struct {
	Pins  []MapPin `json:"pins"`
	Count int      `json:"count"`
}

// BroadcastMessage represents a message sent to WebSocket clients
type BroadcastMessage struct {
	Type      string      `json:"type"`
	Data      interface{} `json:"data"`
	Timestamp time.Time   `json:"timestamp"`
}
