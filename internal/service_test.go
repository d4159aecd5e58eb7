package internal

import (
	"context"
	"errors"
	"testing"

	"github.com/iksnae/support-analytics/testutil"
)

func TestDashboardService_Dashboard(t *testing.T) {
	cm := NewCacheManager(testutil.CreateTempDir(t))
	svc := NewDashboardService(NewTestStubSource(), LoadOptions{}, 0, cm, "stub:test")

	d, err := svc.Dashboard(context.Background(), "open")
	if err != nil {
		t.Fatalf("Dashboard() error = %v", err)
	}
	if d.Stale {
		t.Error("fresh dashboard marked stale")
	}
	if d.Stats.TotalIssues != 3 || d.Stats.ResolvedIssues != 1 || d.Stats.ResolutionRate != 33 {
		t.Errorf("Stats = %+v, want 3 issues, 1 resolved, 33%%", d.Stats)
	}
	if len(d.Issues) != 1 || d.Issues[0].ID != "101" {
		t.Errorf("Issues = %+v, want only open issue 101", d.Issues)
	}

	cached, ok := svc.LastGood()
	if !ok {
		t.Fatal("LastGood() found nothing after a successful load")
	}
	if len(cached.Issues) != 3 || cached.Filter != FilterAll {
		t.Errorf("cached dashboard should be unfiltered, got filter %q with %d issues", cached.Filter, len(cached.Issues))
	}
}

func TestDashboardService_FallsBackToLastGood(t *testing.T) {
	cm := NewCacheManager(testutil.CreateTempDir(t))
	src := NewTestStubSource()
	svc := NewDashboardService(src, LoadOptions{}, 0, cm, "stub:test")

	first, err := svc.Dashboard(context.Background(), FilterAll)
	if err != nil {
		t.Fatalf("Dashboard() error = %v", err)
	}

	boom := errors.New("network down")
	src.MessagesErr = boom

	d, err := svc.Dashboard(context.Background(), "resolved")
	if !errors.Is(err, boom) {
		t.Fatalf("Dashboard() error = %v, want %v", err, boom)
	}
	if d == nil {
		t.Fatal("Dashboard() returned nil dashboard on failure")
	}
	if !d.Stale {
		t.Error("fallback dashboard should be marked stale")
	}
	if d.SnapshotID != first.SnapshotID {
		t.Errorf("SnapshotID = %q, want last good %q", d.SnapshotID, first.SnapshotID)
	}
	if d.Stats != first.Stats {
		t.Errorf("Stats = %+v, want last good %+v", d.Stats, first.Stats)
	}
	if len(d.Issues) != 1 || d.Issues[0].ID != "100" {
		t.Errorf("Issues = %+v, want resolved issue 100", d.Issues)
	}
}

func TestDashboardService_FallsBackToEmpty(t *testing.T) {
	src := NewTestStubSource()
	src.IssuesErr = errors.New("timeout")
	svc := NewDashboardService(src, LoadOptions{}, 0, nil, "")

	d, err := svc.Dashboard(context.Background(), FilterAll)
	if err == nil {
		t.Fatal("Dashboard() error = nil, want fetch error")
	}
	if d.Stale {
		t.Error("empty dashboard should not be marked stale")
	}
	if d.Stats != (Stats{}) || len(d.Issues) != 0 || len(d.Categories) != 0 {
		t.Errorf("Dashboard() = %+v, want empty dashboard", d)
	}
	if d.Source != "stub" {
		t.Errorf("Source = %q, want stub", d.Source)
	}
}

func TestDashboardService_Hooks(t *testing.T) {
	svc := NewDashboardService(NewTestStubSource(), LoadOptions{}, 0, nil, "")

	var seen []*Dashboard
	svc.AddHook(func(ctx context.Context, d *Dashboard) error {
		seen = append(seen, d)
		return nil
	})
	svc.AddHook(func(ctx context.Context, d *Dashboard) error {
		return errors.New("publish failed")
	})

	if _, err := svc.Dashboard(context.Background(), "pending"); err != nil {
		t.Fatalf("Dashboard() error = %v, hook errors must not fail the load", err)
	}
	if len(seen) != 1 {
		t.Fatalf("hook called %d times, want 1", len(seen))
	}
	if seen[0].Filter != FilterAll || len(seen[0].Issues) != 3 {
		t.Errorf("hook got filter %q with %d issues, want unfiltered dashboard", seen[0].Filter, len(seen[0].Issues))
	}
}

func TestDashboardService_NoHookOnFailure(t *testing.T) {
	src := NewTestStubSource()
	src.ConversationsErr = errors.New("refused")
	svc := NewDashboardService(src, LoadOptions{}, 0, nil, "")

	called := false
	svc.AddHook(func(ctx context.Context, d *Dashboard) error {
		called = true
		return nil
	})

	_, _ = svc.Dashboard(context.Background(), FilterAll)
	if called {
		t.Error("hook ran after a failed load")
	}
}
