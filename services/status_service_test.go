package services

import (
	"testing"
)

func TestStatusGroup(t *testing.T) {
	testCases := []struct {
		name     string
		status   string
		expected string
	}{
		{
			name:     "received",
			status:   "received",
			expected: GroupReceived,
		},
		{
			name:     "active joins the in-progress group",
			status:   "active",
			expected: GroupInProgress,
		},
		{
			name:     "in_progress joins the in-progress group",
			status:   "in_progress",
			expected: GroupInProgress,
		},
		{
			name:     "resolved",
			status:   "resolved",
			expected: GroupResolved,
		},
		{
			name:     "mixed casing from historical rows",
			status:   "Active",
			expected: GroupInProgress,
		},
		{
			name:     "padded value",
			status:   " resolved ",
			expected: GroupResolved,
		},
		{
			name:     "unknown backend value",
			status:   "ARCHIVED",
			expected: GroupUnknown,
		},
		{
			name:     "empty",
			status:   "",
			expected: GroupUnknown,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := StatusGroup(tc.status); got != tc.expected {
				t.Errorf("StatusGroup(%q) = %q, want %q", tc.status, got, tc.expected)
			}
		})
	}
}

func TestStatusRankOrdering(t *testing.T) {
	if StatusRank("received") != 0 {
		t.Errorf("StatusRank(received) = %d, want 0", StatusRank("received"))
	}
	if StatusRank("active") != StatusRank("in_progress") {
		t.Errorf("active and in_progress must share a rank, got %d and %d",
			StatusRank("active"), StatusRank("in_progress"))
	}
	if !(StatusRank("received") < StatusRank("active")) {
		t.Error("received must rank below the in-progress group")
	}
	if !(StatusRank("in_progress") < StatusRank("resolved")) {
		t.Error("the in-progress group must rank below resolved")
	}
	if StatusRank("ARCHIVED") != -1 {
		t.Errorf("StatusRank(ARCHIVED) = %d, want -1", StatusRank("ARCHIVED"))
	}
}

func TestBadgeClass(t *testing.T) {
	testCases := []struct {
		status   string
		expected string
	}{
		{status: "received", expected: "pending"},
		{status: "active", expected: "active"},
		{status: "in_progress", expected: "progress"},
		{status: "resolved", expected: "resolved"},
		{status: "ARCHIVED", expected: ""},
		{status: "", expected: ""},
	}

	for _, tc := range testCases {
		if got := BadgeClass(tc.status); got != tc.expected {
			t.Errorf("BadgeClass(%q) = %q, want %q", tc.status, got, tc.expected)
		}
	}
}

func TestDisplayLabel(t *testing.T) {
	testCases := []struct {
		name     string
		status   string
		audience Audience
		expected string
	}{
		{
			name:     "terse copy for operations",
			status:   "received",
			audience: AudienceOperations,
			expected: "Received",
		},
		{
			name:     "in_progress for operations",
			status:   "in_progress",
			audience: AudienceOperations,
			expected: "In progress",
		},
		{
			name:     "unknown status falls back to the raw value",
			status:   "ARCHIVED",
			audience: AudienceOperations,
			expected: "ARCHIVED",
		},
		{
			name:     "underscores become spaces in the fallback",
			status:   "on_hold",
			audience: AudienceOperations,
			expected: "on hold",
		},
		{
			name:     "narrative copy for citizens",
			status:   "resolved",
			audience: AudienceCitizen,
			expected: "Safe and resolved. The individual has been rescued.",
		},
		{
			name:     "active and in_progress read the same to citizens",
			status:   "active",
			audience: AudienceCitizen,
			expected: "Rescue in progress. Help is on the way.",
		},
		{
			name:     "empty status still yields a label",
			status:   "",
			audience: AudienceCitizen,
			expected: "Pending",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := DisplayLabel(tc.status, tc.audience)
			if got != tc.expected {
				t.Errorf("DisplayLabel(%q, %q) = %q, want %q", tc.status, tc.audience, got, tc.expected)
			}
			if got == "" {
				t.Errorf("DisplayLabel(%q, %q) must never be empty", tc.status, tc.audience)
			}
		})
	}

	// Citizen labels for in-progress statuses must not distinguish the
	// synonym pair.
	if DisplayLabel("active", AudienceCitizen) != DisplayLabel("in_progress", AudienceCitizen) {
		t.Error("citizen copy must not distinguish active from in_progress")
	}
}
