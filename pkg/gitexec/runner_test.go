package gitexec

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateWorkDir(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "plain")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o600))

	tests := []struct {
		name    string
		dir     string
		wantErr string
	}{
		{name: "existing directory", dir: dir},
		{name: "empty", dir: "  ", wantErr: "working directory is required"},
		{name: "missing", dir: filepath.Join(dir, "nope"), wantErr: "working directory"},
		{name: "not a directory", dir: file, wantErr: "is not a directory"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateWorkDir(tc.dir)
			if tc.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}
