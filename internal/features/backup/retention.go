package backup

import (
	"sort"
	"time"
)

// BackupSet is one completed dump directory, identified by its manifest.
type BackupSet struct {
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	SizeBytes int64     `json:"sizeBytes"`
}

// Retain applies the rotation policy: keep the newest set, the newest set
// from before today (yesterday's state), and the newest set at least a week
// old. Everything else is returned for deletion.
func Retain(sets []BackupSet, now time.Time) (keep []BackupSet, drop []BackupSet) {
	if len(sets) == 0 {
		return nil, nil
	}

	sorted := make([]BackupSet, len(sets))
	copy(sorted, sets)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].CreatedAt.After(sorted[j].CreatedAt)
	})

	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	weekAgo := now.AddDate(0, 0, -7)

	keepNames := map[string]bool{}

	// Newest overall.
	keepNames[sorted[0].Name] = true

	// Newest from before today.
	for _, s := range sorted {
		if s.CreatedAt.Before(startOfDay) {
			keepNames[s.Name] = true
			break
		}
	}

	// Newest at least a week old.
	for _, s := range sorted {
		if !s.CreatedAt.After(weekAgo) {
			keepNames[s.Name] = true
			break
		}
	}

	for _, s := range sorted {
		if keepNames[s.Name] {
			keep = append(keep, s)
		} else {
			drop = append(drop, s)
		}
	}
	return keep, drop
}
