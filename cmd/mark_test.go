package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"colfmt.dev/pkg/colfmt/internal/domain"
	m "colfmt.dev/pkg/colfmt/internal/model"
)

func TestMarkCmd_ThresholdAndMatrix(t *testing.T) {
	mockWorkflow := useMockWorkflow(t)

	var got domain.FormatArgs

	mockWorkflow.On("Mark", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		got = args.Get(1).(domain.FormatArgs)
	}).Return(nil).Once()

	_, err := executeCmd(t, newMarkCmd(), "mark", "--threshold", "5.5", "--matrix", "weights.toml", "--diff", ".")
	require.NoError(t, err)

	assert.InDelta(t, 5.5, got.Threshold, 1e-9)
	assert.Equal(t, m.Path("weights.toml"), got.Matrix)
	assert.Equal(t, []m.Path{"."}, got.Paths)
	assert.True(t, got.Diff)
}

func TestMarkCmd_HasNoDefaultThreshold(t *testing.T) {
	cmd := newMarkCmd()

	flag := cmd.Flags().Lookup(thresholdFlagName)
	require.NotNil(t, flag)
	assert.Equal(t, "0", flag.DefValue)
	assert.NotNil(t, cmd.Flags().Lookup(matrixFlagName))
	assert.NotNil(t, cmd.Flags().Lookup(checkFlagName))
}
