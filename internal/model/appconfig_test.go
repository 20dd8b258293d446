package model

import "testing"

func TestDefaultAppConfigIsValid(t *testing.T) {
	cfg := DefaultAppConfig()

	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should validate, got %v", err)
	}
	if cfg.DefaultDoor != DefaultDoorToken {
		t.Errorf("expected default door %s, got %s", DefaultDoorToken, cfg.DefaultDoor)
	}
	if cfg.VariantsPerLayout != 4 {
		t.Errorf("expected 4 variants per layout, got %d", cfg.VariantsPerLayout)
	}
	if cfg.RecentRuns == nil {
		t.Error("RecentRuns should not be nil")
	}
}

func TestDefaultAppConfigDoesNotShareMultipliers(t *testing.T) {
	cfg := DefaultAppConfig()
	cfg.BudgetMultipliers[0] = 5

	got := DefaultBudgetMultipliers()
	if got[0] != 1.00 {
		t.Errorf("mutating a config leaked into DefaultBudgetMultipliers: %v", got)
	}

	got[1] = 7
	again := DefaultBudgetMultipliers()
	want := []float64{1.00, 0.92, 1.08, 0.98}
	for i := range want {
		if again[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, again)
		}
	}
}

func TestAppConfigValidate_Rejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*AppConfig)
		code   ErrorCode
	}{
		{"too many variants", func(c *AppConfig) { c.VariantsPerLayout = 5 }, ErrCodeInvalidInput},
		{"zero scale", func(c *AppConfig) { c.PlanScale = 0 }, ErrCodeInvalidInput},
		{"deposit above one", func(c *AppConfig) { c.DepositRate = 1.5 }, ErrCodeInvalidInput},
		{"unknown export", func(c *AppConfig) { c.ExtraExports = []string{"step"} }, ErrCodeInvalidInput},
		{"empty multipliers", func(c *AppConfig) { c.BudgetMultipliers = nil }, ErrCodeInvalidInput},
		{"unknown door", func(c *AppConfig) { c.DefaultDoor = "DXXX" }, ErrCodeUnknownFinish},
		{"unknown top", func(c *AppConfig) { c.DefaultTop = "CXXX" }, ErrCodeUnknownFinish},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultAppConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if got := CodeOf(err); got != tt.code {
				t.Errorf("expected code %s, got %s (%v)", tt.code, got, err)
			}
		})
	}
}

func TestWantsExport(t *testing.T) {
	cfg := DefaultAppConfig()
	cfg.ExtraExports = []string{ExportQuotePDF, ExportDXF}

	if !cfg.WantsExport(ExportQuotePDF) {
		t.Error("expected pdf export to be requested")
	}
	if cfg.WantsExport(ExportWorkbook) {
		t.Error("did not expect xlsx export")
	}
}

func TestRememberRun(t *testing.T) {
	cfg := DefaultAppConfig()
	for i := 0; i < 12; i++ {
		cfg.RememberRun(string(rune('a' + i)))
	}
	cfg.RememberRun("c")

	if len(cfg.RecentRuns) != 10 {
		t.Fatalf("expected 10 recent runs, got %d", len(cfg.RecentRuns))
	}
	if cfg.RecentRuns[0] != "c" {
		t.Errorf("expected most recent run first, got %s", cfg.RecentRuns[0])
	}
	seen := map[string]bool{}
	for _, r := range cfg.RecentRuns {
		if seen[r] {
			t.Errorf("run %s listed twice", r)
		}
		seen[r] = true
	}
}
