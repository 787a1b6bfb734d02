package services

import (
	"fmt"

	"rescue-dashboard/models"
)

// IDStyle selects the case-id format. The operational dashboards use
// RPT-00042, citizen-facing pages use RSC-000042; both forms exist in the
// wild and both must stay supported.
type IDStyle string

const (
	IDStyleOperations IDStyle = "operations"
	IDStyleCitizen    IDStyle = "citizen"
)

// timestampLabelLayout is the human-readable form used on cards and table
// rows.
const timestampLabelLayout = "02 Jan 2006 15:04"

// FormatReportID renders the fixed-width zero-padded case identifier.
func FormatReportID(id int64, style IDStyle) string {
	if style == IDStyleCitizen {
		return fmt.Sprintf("RSC-%06d", id)
	}
	return fmt.Sprintf("RPT-%05d", id)
}

// TimestampLabel renders the freshest timestamp of a report for display.
// Unparseable timestamps fall back to the raw stored string so bad data stays
// visible instead of vanishing.
func TimestampLabel(r models.Report) string {
	if ts, ok := FreshestTimestamp(r); ok {
		return ts.Format(timestampLabelLayout)
	}
	if r.UpdatedAt != "" {
		return r.UpdatedAt
	}
	return r.CreatedAt
}

// ProgressSteps derives the three-step timeline activation from the status
// rank: step i is active iff rank >= i. Unknown statuses (rank -1) light
// nothing.
func ProgressSteps(status string) [3]bool {
	rank := StatusRank(status)
	var steps [3]bool
	for i := range steps {
		steps[i] = rank >= i
	}
	return steps
}

// ProjectReport maps a report to its display projection for one audience and
// id style. No I/O, no side effects.
func ProjectReport(r models.Report, style IDStyle, audience Audience) models.ReportProjection {
	return models.ReportProjection{
		IDLabel:        FormatReportID(r.ID, style),
		StatusLabel:    DisplayLabel(r.Status, audience),
		StatusGroup:    StatusGroup(r.Status),
		BadgeClass:     BadgeClass(r.Status),
		ProgressSteps:  ProgressSteps(r.Status),
		TimestampLabel: TimestampLabel(r),
	}
}

// ProjectReports fills the projections of an already-filtered response in
// place and returns it.
func ProjectReports(response models.ReportsResponse, style IDStyle, audience Audience) models.ReportsResponse {
	for i := range response.Reports {
		response.Reports[i].Projection = ProjectReport(response.Reports[i].Report, style, audience)
	}
	return response
}
