package domain

import (
	"testing"
	"time"
)

func res(category Category, status Status, created, updated time.Time) Resource {
	return Resource{
		Category:  category,
		Status:    status,
		CreatedAt: created,
		UpdatedAt: updated,
	}
}

func TestComputeStats_Empty(t *testing.T) {
	stats := ComputeStats(nil)

	if stats.Total != 0 {
		t.Fatalf("expected total 0, got %d", stats.Total)
	}
	if len(stats.ByCategory) != len(Categories) {
		t.Fatalf("expected all categories enumerated, got %d", len(stats.ByCategory))
	}
	if len(stats.ByStatus) != len(Statuses) {
		t.Fatalf("expected all statuses enumerated, got %d", len(stats.ByStatus))
	}
	for c, n := range stats.ByCategory {
		if n != 0 {
			t.Fatalf("expected zero count for %s, got %d", c, n)
		}
	}
	if len(stats.RecentActivity) != 0 {
		t.Fatalf("expected empty recent activity, got %d", len(stats.RecentActivity))
	}
}

func TestComputeStats_Counts(t *testing.T) {
	now := time.Now().UTC()
	resources := []Resource{
		res(CategoryEquipment, StatusAvailable, now, now),
		res(CategoryEquipment, StatusLowStock, now, now),
		res(CategorySoftware, StatusAvailable, now, now),
	}

	stats := ComputeStats(resources)

	if stats.Total != 3 {
		t.Fatalf("expected total 3, got %d", stats.Total)
	}
	if stats.ByCategory[CategoryEquipment] != 2 {
		t.Fatalf("expected 2 equipment, got %d", stats.ByCategory[CategoryEquipment])
	}
	if stats.ByCategory[CategorySoftware] != 1 {
		t.Fatalf("expected 1 software, got %d", stats.ByCategory[CategorySoftware])
	}
	if stats.ByCategory[CategoryMarketing] != 0 {
		t.Fatalf("expected 0 marketing, got %d", stats.ByCategory[CategoryMarketing])
	}
	if stats.ByStatus[StatusAvailable] != 2 || stats.ByStatus[StatusLowStock] != 1 {
		t.Fatalf("unexpected status counts: %+v", stats.ByStatus)
	}
	if stats.ByStatus[StatusOnOrder] != 0 || stats.ByStatus[StatusDepleted] != 0 {
		t.Fatalf("expected zero counts for unused statuses: %+v", stats.ByStatus)
	}

	sum := 0
	for _, n := range stats.ByStatus {
		sum += n
	}
	if sum != stats.Total {
		t.Fatalf("status counts sum %d, want %d", sum, stats.Total)
	}
}

func TestComputeStats_OffEnumValuesCountTowardTotal(t *testing.T) {
	now := time.Now().UTC()
	resources := []Resource{
		res(CategoryEquipment, StatusAvailable, now, now),
		res(Category("Misc"), Status("Unknown"), now, now),
	}

	stats := ComputeStats(resources)

	if stats.Total != 2 {
		t.Fatalf("expected total 2, got %d", stats.Total)
	}
	if _, ok := stats.ByCategory[Category("Misc")]; ok {
		t.Fatalf("off-enum category must not be enumerated")
	}
	if len(stats.RecentActivity) != 2 {
		t.Fatalf("off-enum resources must stay in recent activity")
	}
}

func TestComputeStats_RecentActivityOrderAndCap(t *testing.T) {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	var resources []Resource
	for i := 0; i < 8; i++ {
		r := res(CategoryEquipment, StatusAvailable, base, base.Add(time.Duration(i)*time.Minute))
		r.Title = string(rune('a' + i))
		resources = append(resources, r)
	}

	stats := ComputeStats(resources)

	if len(stats.RecentActivity) != 5 {
		t.Fatalf("expected 5 recent entries, got %d", len(stats.RecentActivity))
	}
	for i := 1; i < len(stats.RecentActivity); i++ {
		prev := stats.RecentActivity[i-1].EffectiveModifiedAt()
		cur := stats.RecentActivity[i].EffectiveModifiedAt()
		if cur.After(prev) {
			t.Fatalf("recent activity not sorted descending at %d", i)
		}
	}
	if stats.RecentActivity[0].Title != "h" {
		t.Fatalf("expected most recently modified first, got %q", stats.RecentActivity[0].Title)
	}
}

func TestComputeStats_StableTieBreak(t *testing.T) {
	ts := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	resources := []Resource{
		{Title: "first", Category: CategoryEquipment, Status: StatusAvailable, CreatedAt: ts, UpdatedAt: ts},
		{Title: "second", Category: CategoryEquipment, Status: StatusAvailable, CreatedAt: ts, UpdatedAt: ts},
		{Title: "third", Category: CategoryEquipment, Status: StatusAvailable, CreatedAt: ts, UpdatedAt: ts},
	}

	stats := ComputeStats(resources)

	want := []string{"first", "second", "third"}
	for i, title := range want {
		if stats.RecentActivity[i].Title != title {
			t.Fatalf("tie-break broke input order: got %q at %d", stats.RecentActivity[i].Title, i)
		}
	}
}

func TestComputeStats_FallsBackToCreationTime(t *testing.T) {
	older := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	newer := older.Add(time.Hour)
	resources := []Resource{
		{Title: "no-update", Category: CategoryEquipment, Status: StatusAvailable, CreatedAt: newer},
		{Title: "updated", Category: CategoryEquipment, Status: StatusAvailable, CreatedAt: older, UpdatedAt: older},
	}

	stats := ComputeStats(resources)

	if stats.RecentActivity[0].Title != "no-update" {
		t.Fatalf("expected creation-time fallback to win, got %q", stats.RecentActivity[0].Title)
	}
}

func TestComputeStats_DoesNotMutateInput(t *testing.T) {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	resources := []Resource{
		{Title: "old", Category: CategoryEquipment, Status: StatusAvailable, CreatedAt: base, UpdatedAt: base},
		{Title: "new", Category: CategoryEquipment, Status: StatusAvailable, CreatedAt: base, UpdatedAt: base.Add(time.Hour)},
	}

	_ = ComputeStats(resources)

	if resources[0].Title != "old" || resources[1].Title != "new" {
		t.Fatalf("input slice reordered: %q, %q", resources[0].Title, resources[1].Title)
	}
}
