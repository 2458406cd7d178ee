package prometheus

import (
	"testing"
)

func TestNewMonitor(t *testing.T) {
	monitor := New()

	if monitor.Registry == nil {
		t.Fatal("Registry should not be nil")
	}

	tests := []struct {
		name   string
		metric interface{}
	}{
		{"CatalogProducts", monitor.CatalogProducts},
		{"LastScrape", monitor.LastScrape},
		{"ScrapeDuration", monitor.ScrapeDuration},
		{"ScrapesTotal", monitor.ScrapesTotal},
		{"DroppedRecords", monitor.DroppedRecords},
		{"SearchesTotal", monitor.SearchesTotal},
		{"AnalysisTotal", monitor.AnalysisTotal},
		{"FallbackTotal", monitor.FallbackTotal},
		{"InputTokens", monitor.InputTokens},
		{"OutputTokens", monitor.OutputTokens},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.metric == nil {
				t.Errorf("%s should not be nil", tt.name)
			}
		})
	}
}
