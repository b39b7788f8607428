package backup

import (
	"testing"
	"time"
)

func set(name string, createdAt time.Time) BackupSet {
	return BackupSet{Name: name, CreatedAt: createdAt}
}

func names(sets []BackupSet) map[string]bool {
	out := map[string]bool{}
	for _, s := range sets {
		out[s.Name] = true
	}
	return out
}

func TestRetainEmpty(t *testing.T) {
	keep, drop := Retain(nil, time.Now())
	if keep != nil || drop != nil {
		t.Errorf("Retain(nil) = %v, %v", keep, drop)
	}
}

func TestRetainKeepsSingleSet(t *testing.T) {
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	keep, drop := Retain([]BackupSet{set("only", now.Add(-2*time.Hour))}, now)
	if len(keep) != 1 || len(drop) != 0 {
		t.Errorf("keep = %v, drop = %v", keep, drop)
	}
}

func TestRetainDayPrevDayAndWeek(t *testing.T) {
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	sets := []BackupSet{
		set("today-late", now.Add(-1*time.Hour)),
		set("today-early", now.Add(-10*time.Hour)),
		set("yesterday", now.AddDate(0, 0, -1)),
		set("three-days", now.AddDate(0, 0, -3)),
		set("eight-days", now.AddDate(0, 0, -8)),
		set("twelve-days", now.AddDate(0, 0, -12)),
	}

	keep, drop := Retain(sets, now)
	kept := names(keep)

	if !kept["today-late"] {
		t.Error("newest set not kept")
	}
	if !kept["yesterday"] {
		t.Error("newest pre-today set not kept")
	}
	if !kept["eight-days"] {
		t.Error("newest week-old set not kept")
	}
	if len(keep) != 3 {
		t.Errorf("kept %d sets, want 3: %v", len(keep), keep)
	}

	dropped := names(drop)
	for _, name := range []string{"today-early", "three-days", "twelve-days"} {
		if !dropped[name] {
			t.Errorf("%s not rotated out", name)
		}
	}
}

func TestRetainSlotsMayCollapse(t *testing.T) {
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	// One old set fills both the pre-today and the week-old slot.
	sets := []BackupSet{
		set("today", now.Add(-1*time.Hour)),
		set("old", now.AddDate(0, 0, -9)),
	}

	keep, drop := Retain(sets, now)
	if len(keep) != 2 || len(drop) != 0 {
		t.Errorf("keep = %v, drop = %v", keep, drop)
	}
}
