package types

import (
	"errors"
	"testing"
)

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr error
	}{
		{
			name:    "empty backend returns ErrBackendEmpty",
			config:  Config{Backend: "", DataDir: "/tmp/data"},
			wantErr: ErrBackendEmpty,
		},
		{
			name:    "unknown backend returns ErrBackendUnknown",
			config:  Config{Backend: "mongo", DataDir: "/tmp/data"},
			wantErr: ErrBackendUnknown,
		},
		{
			name:    "valid sqlite config",
			config:  Config{Backend: BackendSQLite, DataDir: "/tmp/data"},
			wantErr: nil,
		},
		{
			name:    "file with empty DataDir is valid at config level",
			config:  Config{Backend: BackendFile, DataDir: ""},
			wantErr: nil,
		},
		{
			name:    "memory needs nothing else",
			config:  Config{Backend: BackendMemory},
			wantErr: nil,
		},
		{
			name:    "postgres without dsn",
			config:  Config{Backend: BackendPostgres},
			wantErr: ErrDSNEmpty,
		},
		{
			name:    "postgres with dsn",
			config:  Config{Backend: BackendPostgres, DSN: "postgres://localhost/rolodex"},
			wantErr: nil,
		},
		{
			name:    "redis without address",
			config:  Config{Backend: BackendRedis},
			wantErr: ErrRedisAddrEmpty,
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
			if err == nil {
				t.Fatalf("expected error %v, got nil", tt.wantErr)
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected error %v, got %v", tt.wantErr, err)
			}
		})
	}
}
