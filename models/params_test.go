package models

import (
	"net/url"
	"testing"
)

func TestParseDateRange(t *testing.T) {
	tests := []struct {
		name      string
		query     string
		wantErr   string
		wantStart *int64
		wantEnd   *int64
	}{
		{name: "no bounds", query: ""},
		{name: "start only", query: "start_date=100", wantStart: int64p(100)},
		{name: "end only", query: "end_date=200", wantEnd: int64p(200)},
		{name: "both bounds", query: "start_date=100&end_date=200", wantStart: int64p(100), wantEnd: int64p(200)},
		{name: "equal bounds", query: "start_date=100&end_date=100", wantStart: int64p(100), wantEnd: int64p(100)},
		{name: "bad start", query: "start_date=abc", wantErr: "Invalid start_date parameter. Must be a valid Unix timestamp."},
		{name: "bad end", query: "start_date=100&end_date=later", wantErr: "Invalid end_date parameter. Must be a valid Unix timestamp."},
		{name: "inverted range", query: "start_date=200&end_date=100", wantErr: "start_date cannot be greater than end_date."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, _ := url.ParseQuery(tt.query)
			dr, err := ParseDateRange(q)

			if tt.wantErr != "" {
				if err == nil || err.Error() != tt.wantErr {
					t.Fatalf("error = %v, want %q", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !int64pEq(dr.Start, tt.wantStart) {
				t.Errorf("Start = %v, want %v", dr.Start, tt.wantStart)
			}
			if !int64pEq(dr.End, tt.wantEnd) {
				t.Errorf("End = %v, want %v", dr.End, tt.wantEnd)
			}
		})
	}
}

func int64p(v int64) *int64 { return &v }

func int64pEq(a, b *int64) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
