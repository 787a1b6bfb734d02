package services

import (
	"strings"
)

// Report statuses as stored by the backend. Historical data carries both
// "active" and "in_progress" for the same stage; the two are never
// distinguished anywhere in the dashboards.
const (
	StatusReceived   = "received"
	StatusActive     = "active"
	StatusInProgress = "in_progress"
	StatusResolved   = "resolved"
)

// Status groups, the three-way bucketing used for filtering, counting and
// progress display.
const (
	GroupReceived   = "received"
	GroupInProgress = "in_progress"
	GroupResolved   = "resolved"
	GroupUnknown    = "unknown"
)

// Audience selects the register of display labels: narrative copy for
// citizens, terse copy for admins and rescue teams.
type Audience string

const (
	AudienceCitizen    Audience = "citizen"
	AudienceOperations Audience = "operations"
)

// normalizeStatus makes status comparison immune to the casing and padding
// inconsistencies present in historical records.
func normalizeStatus(status string) string {
	return strings.ToLower(strings.TrimSpace(status))
}

// StatusGroup maps a raw status to its group. Unrecognized values map to
// GroupUnknown; the backend may grow new statuses and the dashboards must
// degrade instead of crashing.
func StatusGroup(status string) string {
	switch normalizeStatus(status) {
	case StatusReceived:
		return GroupReceived
	case StatusActive, StatusInProgress:
		return GroupInProgress
	case StatusResolved:
		return GroupResolved
	default:
		return GroupUnknown
	}
}

// StatusRank returns the position of a status in the lifecycle order:
// 0 received, 1 in-progress group, 2 resolved. Unknown statuses return -1,
// rendered as "no progress shown".
func StatusRank(status string) int {
	switch StatusGroup(status) {
	case GroupReceived:
		return 0
	case GroupInProgress:
		return 1
	case GroupResolved:
		return 2
	default:
		return -1
	}
}

// BadgeClass returns the styling tag for a status badge. Unknown statuses get
// an empty tag, not an error.
func BadgeClass(status string) string {
	switch normalizeStatus(status) {
	case StatusReceived:
		return "pending"
	case StatusActive:
		return "active"
	case StatusInProgress:
		return "progress"
	case StatusResolved:
		return "resolved"
	default:
		return ""
	}
}

// DisplayLabel returns a human-readable phrase for a status. Citizen copy is
// reassuring, operations copy is terse. Always non-empty: unknown statuses
// fall back to the raw value with underscores replaced by spaces.
func DisplayLabel(status string, audience Audience) string {
	normalized := normalizeStatus(status)
	if normalized == "" {
		return "Pending"
	}

	if audience == AudienceCitizen {
		switch normalized {
		case StatusReceived:
			return "Report received. We are reviewing the details."
		case StatusActive, StatusInProgress:
			return "Rescue in progress. Help is on the way."
		case StatusResolved:
			return "Safe and resolved. The individual has been rescued."
		}
	} else {
		switch normalized {
		case StatusReceived:
			return "Received"
		case StatusActive:
			return "Active"
		case StatusInProgress:
			return "In progress"
		case StatusResolved:
			return "Resolved"
		}
	}

	return strings.ReplaceAll(status, "_", " ")
}
