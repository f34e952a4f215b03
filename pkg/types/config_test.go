package types

import (
	"errors"
	"testing"
)

func TestConfigValidate(t *testing.T) {
	valid := Config{}.WithDefaults()

	tests := []struct {
		name    string
		config  Config
		wantErr error
	}{
		{
			name:    "empty backend returns ErrBackendEmpty",
			config:  Config{Backend: "", BackupLimit: 50, Separator: "_"},
			wantErr: ErrBackendEmpty,
		},
		{
			name:    "unknown backend returns ErrBackendUnknown",
			config:  Config{Backend: "postgres", BackupLimit: 50, Separator: "_"},
			wantErr: ErrBackendUnknown,
		},
		{
			name:    "non-positive backup limit",
			config:  Config{Backend: BackendJSON, BackupLimit: -1, Separator: "_"},
			wantErr: ErrBackupLimitInvalid,
		},
		{
			name:    "empty separator",
			config:  Config{Backend: BackendJSON, BackupLimit: 50},
			wantErr: ErrSeparatorEmpty,
		},
		{
			name:    "unknown log format",
			config:  Config{Backend: BackendJSON, BackupLimit: 50, Separator: "_", LogFormat: "xml"},
			wantErr: ErrLogFormatUnknown,
		},
		{
			name:    "defaults are valid",
			config:  valid,
			wantErr: nil,
		},
		{
			name:    "sqlite backend is valid",
			config:  Config{Backend: BackendSQLite}.WithDefaults(),
			wantErr: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
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

func TestConfigWithDefaults(t *testing.T) {
	t.Run("json backend", func(t *testing.T) {
		got := Config{}.WithDefaults()
		if got.Backend != BackendJSON || got.StoreFile != DefaultJSONStore {
			t.Fatalf("unexpected defaults: %+v", got)
		}
		if got.BackupLimit != 50 || got.Separator != "_" || got.BackupFile != DefaultBackupFile {
			t.Fatalf("unexpected defaults: %+v", got)
		}
	})

	t.Run("sqlite backend picks the db file", func(t *testing.T) {
		got := Config{Backend: BackendSQLite}.WithDefaults()
		if got.StoreFile != DefaultSQLiteStore {
			t.Fatalf("expected %s, got %s", DefaultSQLiteStore, got.StoreFile)
		}
	})

	t.Run("explicit values are kept", func(t *testing.T) {
		got := Config{StoreFile: "vars.json", BackupLimit: 5, Separator: "."}.WithDefaults()
		if got.StoreFile != "vars.json" || got.BackupLimit != 5 || got.Separator != "." {
			t.Fatalf("explicit values overwritten: %+v", got)
		}
	})
}

func TestSafetyError(t *testing.T) {
	protected := &SafetyError{Name: "PATH", Class: Protected}
	if !errors.Is(protected, ErrProtectedVariable) {
		t.Fatalf("protected error should match ErrProtectedVariable")
	}
	if errors.Is(protected, ErrSensitiveVariable) {
		t.Fatalf("protected error should not match ErrSensitiveVariable")
	}

	sensitive := &SafetyError{Name: "LANG", Class: Sensitive}
	if !errors.Is(sensitive, ErrSensitiveVariable) {
		t.Fatalf("sensitive error should match ErrSensitiveVariable")
	}

	var se *SafetyError
	if !errors.As(error(sensitive), &se) || se.Name != "LANG" {
		t.Fatalf("errors.As failed for SafetyError")
	}
}
