package types

import (
	"errors"
	"testing"
)

func TestSettingsValidate(t *testing.T) {
	tests := []struct {
		name     string
		settings Settings
		wantErr  error
	}{
		{
			name:     "defaults are valid",
			settings: DefaultSettings(),
		},
		{
			name:     "empty settings are valid",
			settings: Settings{},
		},
		{
			name:     "unknown log level",
			settings: Settings{LogLevel: "trace"},
			wantErr:  ErrLogLevelUnknown,
		},
		{
			name:     "unknown log format",
			settings: Settings{LogLevel: "info", LogFormat: "xml"},
			wantErr:  ErrLogFormatUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.settings.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("expected nil error, got %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected error %v, got %v", tt.wantErr, err)
			}
		})
	}
}
