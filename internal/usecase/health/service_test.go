package health

import (
	"context"
	"errors"
	"testing"
)

type mockPinger struct {
	err error
}

func (m *mockPinger) Ping(_ context.Context) error { return m.err }

func TestCheck(t *testing.T) {
	down := errors.New("down")

	tests := []struct {
		name       string
		catalog    error
		cache      CachePinger
		wantStatus Status
		wantChecks map[string]CheckResult
	}{
		{
			name:       "all healthy",
			cache:      &mockPinger{},
			wantStatus: Healthy,
			wantChecks: map[string]CheckResult{ComponentCatalog: CheckOK, ComponentCache: CheckOK},
		},
		{
			name:       "catalog unreadable",
			catalog:    down,
			cache:      &mockPinger{},
			wantStatus: Degraded,
			wantChecks: map[string]CheckResult{ComponentCatalog: CheckError, ComponentCache: CheckOK},
		},
		{
			name:       "cache down",
			cache:      &mockPinger{err: down},
			wantStatus: Degraded,
			wantChecks: map[string]CheckResult{ComponentCatalog: CheckOK, ComponentCache: CheckError},
		},
		{
			name:       "cache disabled",
			wantStatus: Healthy,
			wantChecks: map[string]CheckResult{ComponentCatalog: CheckOK},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := New(&mockPinger{err: tt.catalog}, tt.cache)
			r := svc.Check(context.Background())

			if r.Status != tt.wantStatus {
				t.Errorf("expected %q, got %q", tt.wantStatus, r.Status)
			}
			if len(r.Checks) != len(tt.wantChecks) {
				t.Fatalf("expected %d checks, got %v", len(tt.wantChecks), r.Checks)
			}
			for k, v := range tt.wantChecks {
				if r.Checks[k] != v {
					t.Errorf("check %s: expected %q, got %q", k, v, r.Checks[k])
				}
			}
		})
	}
}
