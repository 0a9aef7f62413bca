package countrybed

import (
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name      string
		data      string
		wantErrs  []string
		wantValid bool
	}{
		{
			name:      "fixture",
			data:      fixtureData,
			wantValid: true,
		},
		{
			name:     "duplicate name",
			data:     `[{"name": "Twin", "alpha3Code": "TWA"}, {"name": "Twin", "alpha3Code": "TWB"}]`,
			wantErrs: []string{`name "Twin" already used by record 0`},
		},
		{
			name:     "duplicate code",
			data:     `[{"name": "A", "alpha3Code": "DUP"}, {"name": "B", "alpha3Code": "DUP"}]`,
			wantErrs: []string{`code "DUP" already used by record 0`},
		},
		{
			name:     "empty name",
			data:     `[{"name": "A"}, {"name": "  "}]`,
			wantErrs: []string{"record 1: empty name"},
		},
		{
			name: "all problems reported",
			data: `[{"name": "A", "alpha3Code": "DUP"}, {"name": "A", "alpha3Code": "DUP"}, {"name": ""}]`,
			wantErrs: []string{
				`name "A" already used`,
				`code "DUP" already used`,
				"record 2: empty name",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cb, err := NewCountryBed(WithRawData([]byte(tt.data)))
			if err != nil {
				t.Fatalf("NewCountryBed() error = %v", err)
			}
			err = cb.Validate()
			if tt.wantValid {
				if err != nil {
					t.Errorf("Validate() error = %v, want nil", err)
				}
				return
			}
			if err == nil {
				t.Fatal("Validate() error = nil, want error")
			}
			for _, want := range tt.wantErrs {
				if !strings.Contains(err.Error(), want) {
					t.Errorf("Validate() error = %q, want it to contain %q", err, want)
				}
			}
		})
	}
}

func TestValidate_NilBorders(t *testing.T) {
	cb := newFixtureBed(t)
	cb.countries[2].Borders = nil
	if err := cb.Validate(); err == nil || !strings.Contains(err.Error(), "nil borders") {
		t.Errorf("Validate() error = %v, want nil borders error", err)
	}
}

func TestValidateCache(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	if err := ValidateCache(WithCacheDir(""), WithLogger(zap.New(core))); err != nil {
		t.Fatalf("ValidateCache() error = %v", err)
	}
	for _, msg := range []string{"country count ok", "known countries ok", "coordinate lookups ok"} {
		if logs.FilterMessage(msg).Len() != 1 {
			t.Errorf("missing log %q", msg)
		}
	}
}

func TestValidateCache_Failures(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		wantErr string
	}{
		{"too few countries", fixtureData, "country count too low"},
		{"unloadable", `nope`, "failed to load dataset"},
		{"structural", `[{"name": "A"}, {"name": "A"}]`, "structural check"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateCache(WithRawData([]byte(tt.data)))
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("ValidateCache() error = %v, want %q", err, tt.wantErr)
			}
		})
	}
}
