package services

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"rescue-dashboard/models"
)

// Timestamp layouts accepted from the backend, newest API first. Historical
// rows carry bare dates and space-separated datetimes.
var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseTimestamp parses a backend timestamp. ok is false for empty or
// malformed values; callers decide what that means (date filters never
// exclude on it, recency sort puts it last).
func ParseTimestamp(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}
	for _, layout := range timestampLayouts {
		if ts, err := time.Parse(layout, value); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}

// FreshestTimestamp returns updated_at if present, else created_at. This is
// the one timestamp used for recency sorting and date-range filtering.
func FreshestTimestamp(r models.Report) (time.Time, bool) {
	if ts, ok := ParseTimestamp(r.UpdatedAt); ok {
		return ts, true
	}
	return ParseTimestamp(r.CreatedAt)
}

// dateRange is a resolved inclusive filter window. Unparseable bounds are
// disabled rather than aborting the whole computation.
type dateRange struct {
	start    time.Time
	hasStart bool
	end      time.Time
	hasEnd   bool
}

// resolveDateRange normalizes the bounds to whole calendar days: start to
// 00:00:00.000, end to 23:59:59.999.
func resolveDateRange(criteria models.FilterCriteria) dateRange {
	var dr dateRange
	if ts, ok := ParseTimestamp(criteria.StartDate); ok {
		dr.start = time.Date(ts.Year(), ts.Month(), ts.Day(), 0, 0, 0, 0, ts.Location())
		dr.hasStart = true
	}
	if ts, ok := ParseTimestamp(criteria.EndDate); ok {
		dr.end = time.Date(ts.Year(), ts.Month(), ts.Day(), 23, 59, 59, 999000000, ts.Location())
		dr.hasEnd = true
	}
	return dr
}

// contains reports whether ts falls inside the window, inclusive at both
// boundaries. Reports with no parseable timestamp always match: upstream data
// quality problems must not silently hide records.
func (dr dateRange) contains(ts time.Time, ok bool) bool {
	if !ok {
		return true
	}
	if dr.hasStart && ts.Before(dr.start) {
		return false
	}
	if dr.hasEnd && ts.After(dr.end) {
		return false
	}
	return true
}

// matchesStatus applies the status filter. "all" (or empty, or any
// unrecognized value) is a pass-through: a dashboard showing too much is
// cheaper than one silently showing nothing. The group sentinel "in_progress"
// matches both members of the in-progress group.
func matchesStatus(r models.Report, filter string) bool {
	filter = normalizeStatus(filter)
	switch filter {
	case "", "all":
		return true
	case StatusInProgress:
		return StatusGroup(r.Status) == GroupInProgress
	case StatusReceived, StatusActive, StatusResolved:
		return normalizeStatus(r.Status) == filter
	default:
		return true
	}
}

// matchesSearch applies the case-insensitive substring search over the
// report's searchable fields: id, contact name, location, description. A
// report matches if any one field contains the term.
func matchesSearch(r models.Report, term string) bool {
	if term == "" {
		return true
	}
	fields := []string{
		strconv.FormatInt(r.ID, 10),
		r.ContactName,
		r.Location,
		r.Description,
	}
	for _, field := range fields {
		if strings.Contains(strings.ToLower(field), term) {
			return true
		}
	}
	return false
}

// FilterReports computes the visible subset of a report collection in display
// order, plus counts recomputed over that subset. Pure function of its
// inputs: the input slice is never mutated and no state is retained between
// calls, so the dashboards recompute from scratch on every interaction.
func FilterReports(reports []models.Report, criteria models.FilterCriteria) models.ReportsResponse {
	dr := resolveDateRange(criteria)
	term := strings.ToLower(strings.TrimSpace(criteria.Search))

	filtered := make([]models.Report, 0, len(reports))
	for _, r := range reports {
		if !matchesStatus(r, criteria.Status) {
			continue
		}
		if ts, ok := FreshestTimestamp(r); !dr.contains(ts, ok) {
			continue
		}
		if !matchesSearch(r, term) {
			continue
		}
		filtered = append(filtered, r)
	}

	sortReportsByRecency(filtered)

	response := models.ReportsResponse{
		Reports: make([]models.ReportView, 0, len(filtered)),
		Total:   len(filtered),
	}
	for _, r := range filtered {
		response.Reports = append(response.Reports, models.ReportView{Report: r})
		switch StatusGroup(r.Status) {
		case GroupInProgress:
			response.InProgressCount++
		case GroupResolved:
			response.ResolvedCount++
		}
	}
	return response
}

// sortReportsByRecency orders reports by freshest timestamp, most recent
// first. The sort is stable so equal timestamps keep their input order;
// reports with no parseable timestamp sort to the end.
func sortReportsByRecency(reports []models.Report) {
	type keyed struct {
		ts time.Time
		ok bool
	}
	keys := make(map[int64]keyed, len(reports))
	for _, r := range reports {
		ts, ok := FreshestTimestamp(r)
		keys[r.ID] = keyed{ts: ts, ok: ok}
	}
	sort.SliceStable(reports, func(i, j int) bool {
		ki, kj := keys[reports[i].ID], keys[reports[j].ID]
		if ki.ok != kj.ok {
			return ki.ok
		}
		return ki.ts.After(kj.ts)
	})
}

// matchesUserSearch applies the search term over the user's searchable
// fields: id, full name, email, role.
func matchesUserSearch(u models.User, term string) bool {
	if term == "" {
		return true
	}
	fields := []string{
		strconv.FormatInt(u.ID, 10),
		u.FullName,
		u.Email,
		u.Role,
	}
	for _, field := range fields {
		if strings.Contains(strings.ToLower(field), term) {
			return true
		}
	}
	return false
}

// FilterUsers computes the visible subset of the admin users view: search
// plus an inclusive created_at date window, newest accounts first. Same
// permissive timestamp policy as reports.
func FilterUsers(users []models.User, criteria models.FilterCriteria) models.UsersResponse {
	dr := resolveDateRange(criteria)
	term := strings.ToLower(strings.TrimSpace(criteria.Search))

	filtered := make([]models.User, 0, len(users))
	for _, u := range users {
		if ts, ok := ParseTimestamp(u.CreatedAt); !dr.contains(ts, ok) {
			continue
		}
		if !matchesUserSearch(u, term) {
			continue
		}
		filtered = append(filtered, u)
	}

	sort.SliceStable(filtered, func(a, b int) bool {
		ta, oka := ParseTimestamp(filtered[a].CreatedAt)
		tb, okb := ParseTimestamp(filtered[b].CreatedAt)
		if oka != okb {
			return oka
		}
		return ta.After(tb)
	})

	return models.UsersResponse{Users: filtered, Total: len(filtered)}
}
