package sessionquery

import (
	"reflect"
	"testing"
	"time"
)

func TestEstimate(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name         string
		opts         SessionQueryOptions
		wantScore    int
		wantFactors  []string
		wantDuration EstimatedDuration
	}{
		{
			name: "optimal query",
			opts: SessionQueryOptions{
				FromTimestamp: timePtr(now.Add(-24 * time.Hour)),
				Fields:        []string{"core"},
				Limit:         intPtr(50),
			},
			wantScore:    100,
			wantFactors:  nil,
			wantDuration: DurationFast,
		},
		{
			name:      "everything missing",
			opts:      SessionQueryOptions{},
			wantScore: 15,
			wantFactors: []string{
				"no_time_bounds (-50)",
				"all_fields (-20)",
				"large_limit (-15)",
			},
			wantDuration: DurationVerySlow,
		},
		{
			name: "large time range",
			opts: SessionQueryOptions{
				FromTimestamp: timePtr(now.AddDate(0, 0, -45)),
				Fields:        []string{"core"},
				Limit:         intPtr(50),
			},
			wantScore:    80,
			wantFactors:  []string{"large_time_range (-20)"},
			wantDuration: DurationFast,
		},
		{
			name: "medium time range",
			opts: SessionQueryOptions{
				FromTimestamp: timePtr(now.AddDate(0, 0, -14)),
				Fields:        []string{"core"},
				Limit:         intPtr(50),
			},
			wantScore:    90,
			wantFactors:  []string{"medium_time_range (-10)"},
			wantDuration: DurationFast,
		},
		{
			name: "complex fields",
			opts: SessionQueryOptions{
				FromTimestamp: timePtr(now.Add(-24 * time.Hour)),
				Fields:        []string{"core", "observations"},
				Limit:         intPtr(50),
			},
			wantScore:    90,
			wantFactors:  []string{"complex_fields (-10)"},
			wantDuration: DurationFast,
		},
		{
			name: "all wins over complex",
			opts: SessionQueryOptions{
				FromTimestamp: timePtr(now.Add(-24 * time.Hour)),
				Fields:        []string{"all", "observations"},
				Limit:         intPtr(50),
			},
			wantScore:    80,
			wantFactors:  []string{"all_fields (-20)"},
			wantDuration: DurationFast,
		},
		{
			name: "slow class",
			opts: SessionQueryOptions{
				FromTimestamp: timePtr(now.AddDate(0, 0, -45)),
				Fields:        []string{"scores"},
				Limit:         intPtr(200),
			},
			wantScore: 55,
			wantFactors: []string{
				"large_time_range (-20)",
				"complex_fields (-10)",
				"large_limit (-15)",
			},
			wantDuration: DurationSlow,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := estimateAt(tt.opts, now)

			if result.Score != tt.wantScore {
				t.Errorf("Score = %d, want %d", result.Score, tt.wantScore)
			}
			if !reflect.DeepEqual(result.Factors, tt.wantFactors) {
				t.Errorf("Factors = %v, want %v", result.Factors, tt.wantFactors)
			}
			if result.EstimatedDuration != tt.wantDuration {
				t.Errorf("EstimatedDuration = %q, want %q",
					result.EstimatedDuration, tt.wantDuration)
			}
		})
	}
}

func TestClassifyDuration(t *testing.T) {
	cases := []struct {
		score int
		want  EstimatedDuration
	}{
		{100, DurationFast},
		{80, DurationFast},
		{79, DurationMedium},
		{60, DurationMedium},
		{59, DurationSlow},
		{40, DurationSlow},
		{39, DurationVerySlow},
		{15, DurationVerySlow},
	}

	for _, tc := range cases {
		if got := classifyDuration(tc.score); got != tc.want {
			t.Errorf("classifyDuration(%d) = %q, want %q", tc.score, got, tc.want)
		}
	}
}

func BenchmarkEstimate(b *testing.B) {
	now := time.Now()
	opts := SessionQueryOptions{
		FromTimestamp: timePtr(now.AddDate(0, 0, -14)),
		Fields:        []string{"core", "scores"},
		Limit:         intPtr(50),
	}

	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		estimateAt(opts, now)
	}
}
