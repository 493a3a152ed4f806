package config

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	tests := []struct {
		expected *Config
		name     string
		args     []string
		wantErr  bool
	}{
		{
			name: "all flags",
			args: []string{
				"-a", "127.0.0.1:9090", "-g", "", "-m", "postgres", "-d", "db", "-s", "secret",
				"-t", "5", "-k", "12", "-o", "open", "-l", "debug", "-f", "text",
				"-u", "user", "-p", "password", "-b", "bucket", "-r", "us-west-1", "-e", "http://endpoint",
			},
			expected: &Config{
				HTTPAddr:       "127.0.0.1:9090",
				HealthAddrGRPC: "",
				Storage:        "postgres",
				DatabaseDSN:    "db",
				SecretKey:      "secret",
				TokenTTL:       5 * time.Minute,
				BcryptCost:     12,
				UpdatePolicy:   "open",
				LogLevel:       "debug",
				LogFormat:      "text",
				S3AccessKey:    "user",
				S3SecretKey:    "password",
				S3Bucket:       "bucket",
				S3Region:       "us-west-1",
				S3BaseEndpoint: "http://endpoint",
			},
		},
		{
			name:     "foreign flags are ignored",
			args:     []string{"-c", "conf.json", "-a", ":1"},
			expected: &Config{HTTPAddr: ":1"},
		},
		{
			name:    "bad int",
			args:    []string{"-k", "many"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := &Config{}

			err := parseFlags(config, tt.args)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Empty(t, cmp.Diff(tt.expected, config))
		})
	}
}

func TestParseFlags_TokenTTLUntouchedWithoutFlag(t *testing.T) {
	config := &Config{TokenTTL: 90 * time.Second}
	require.NoError(t, parseFlags(config, []string{"-a", ":1"}))
	assert.Equal(t, 90*time.Second, config.TokenTTL)
}
