package internal

import (
	"regexp"
	"testing"
	"time"
)

func TestReportID(t *testing.T) {
	now := time.UnixMilli(1700000000123)

	got := reportID(now, "שיר")
	if !regexp.MustCompile(`^1700000000123_[0-9a-f]{8}$`).MatchString(got) {
		t.Errorf("unexpected report ID format: %s", got)
	}

	if reportID(now, "שיר") != got {
		t.Error("report ID not stable for same time and title")
	}
	if reportID(now, "שיר אחר") == got {
		t.Error("different titles should give different IDs")
	}
}

func TestGenerateReportID(t *testing.T) {
	id := GenerateReportID("Song 1")
	if !regexp.MustCompile(`^\d{13}_[0-9a-f]{8}$`).MatchString(id) {
		t.Errorf("unexpected report ID format: %s", id)
	}
}
