package cli

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clipdex/clipdex-cli/internal/core/domain"
)

func TestIndexCmd_PrintsBuildStats(t *testing.T) {
	_, index, cleanup := setupTestServices(t)
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"index"})

	err := rootCmd.Execute()
	require.NoError(t, err)

	assert.False(t, index.lastForce)
	assert.Contains(t, buf.String(), "Indexed 3 videos (120 segments) in 7ms")
}

func TestIndexCmd_ForceFlag(t *testing.T) {
	_, index, cleanup := setupTestServices(t)
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"index", "--force"})

	err := rootCmd.Execute()
	require.NoError(t, err)
	assert.True(t, index.lastForce)
}

func TestIndexCmd_SkippedBuild(t *testing.T) {
	_, index, cleanup := setupTestServices(t)
	defer cleanup()
	index.stats = domain.BuildStats{VideosIndexed: 3, SegmentsIndexed: 120, Skipped: true}

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"index"})

	err := rootCmd.Execute()
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Index up to date: 3 videos, 120 segments")
}

func TestIndexCmd_ReportsProblemRecords(t *testing.T) {
	_, index, cleanup := setupTestServices(t)
	defer cleanup()
	index.stats = domain.BuildStats{VideosIndexed: 1, SegmentsIndexed: 4, EmptyRecords: 2, FailedRecords: 1}

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"index"})

	err := rootCmd.Execute()
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "2 empty record(s)")
	assert.Contains(t, buf.String(), "1 record(s) failed to load")
}

func TestIndexCmd_BuildInProgress(t *testing.T) {
	_, index, cleanup := setupTestServices(t)
	defer cleanup()
	index.err = domain.ErrBuildInProgress

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"index"})

	err := rootCmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already running")
}

func TestIndexCmd_BuildError(t *testing.T) {
	_, index, cleanup := setupTestServices(t)
	defer cleanup()
	index.err = errors.New("disk full")

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"index"})

	err := rootCmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
}
