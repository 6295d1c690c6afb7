package profile

import (
	"testing"
)

func TestProfileDefaults(t *testing.T) {
	t.Setenv("ASTROPLAN_MODE", "")
	t.Setenv("ASTROPLAN_LOG_LEVEL", "")
	t.Setenv("ASTROPLAN_LOG_FORMAT", "")
	t.Setenv("ASTROPLAN_HISTORY_LIMIT", "")

	p := &Profile{}
	p.FromEnv()

	tests := []struct {
		name     string
		expected string
		actual   string
	}{
		{"Mode default", "dev", p.Mode},
		{"LogLevel default", "info", p.LogLevel},
		{"LogFormat default", "text", p.LogFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.actual != tt.expected {
				t.Errorf("%s: expected %q, got %q", tt.name, tt.expected, tt.actual)
			}
		})
	}

	if p.HistoryLimit != 50 {
		t.Errorf("HistoryLimit default: expected 50, got %d", p.HistoryLimit)
	}
}

func TestProfileFromEnv(t *testing.T) {
	t.Setenv("ASTROPLAN_MODE", "prod")
	t.Setenv("ASTROPLAN_LOG_LEVEL", "debug")
	t.Setenv("ASTROPLAN_LOG_FORMAT", "json")
	t.Setenv("ASTROPLAN_HISTORY_LIMIT", "10")

	p := &Profile{}
	p.FromEnv()

	if p.Mode != "prod" {
		t.Errorf("Mode: expected %q, got %q", "prod", p.Mode)
	}
	if p.LogLevel != "debug" {
		t.Errorf("LogLevel: expected %q, got %q", "debug", p.LogLevel)
	}
	if p.LogFormat != "json" {
		t.Errorf("LogFormat: expected %q, got %q", "json", p.LogFormat)
	}
	if p.HistoryLimit != 10 {
		t.Errorf("HistoryLimit: expected 10, got %d", p.HistoryLimit)
	}
}

func TestProfileFromEnvKeepsExplicitValues(t *testing.T) {
	t.Setenv("ASTROPLAN_MODE", "prod")

	p := &Profile{Mode: "demo"}
	p.FromEnv()

	if p.Mode != "demo" {
		t.Errorf("explicit mode overridden by env: got %q", p.Mode)
	}
}

func TestProfileValidate(t *testing.T) {
	tests := []struct {
		name    string
		in      Profile
		wantErr bool
		check   func(t *testing.T, p *Profile)
	}{
		{
			name: "unknown mode falls back to demo",
			in:   Profile{Mode: "staging"},
			check: func(t *testing.T, p *Profile) {
				if p.Mode != "demo" {
					t.Errorf("expected demo, got %q", p.Mode)
				}
			},
		},
		{
			name: "empty log format becomes text",
			in:   Profile{Mode: "dev"},
			check: func(t *testing.T, p *Profile) {
				if p.LogFormat != "text" {
					t.Errorf("expected text, got %q", p.LogFormat)
				}
			},
		},
		{
			name:    "bad log format rejected",
			in:      Profile{Mode: "dev", LogFormat: "xml"},
			wantErr: true,
		},
		{
			name:    "negative history limit rejected",
			in:      Profile{Mode: "dev", HistoryLimit: -1},
			wantErr: true,
		},
		{
			name: "zero history limit gets default",
			in:   Profile{Mode: "dev"},
			check: func(t *testing.T, p *Profile) {
				if p.HistoryLimit != 50 {
					t.Errorf("expected 50, got %d", p.HistoryLimit)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := tt.in
			err := p.Validate()
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.check != nil {
				tt.check(t, &p)
			}
		})
	}
}
