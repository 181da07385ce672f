package cli

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeCmd_PrintsRewrittenCount(t *testing.T) {
	maintainer := &fakeMaintainer{rewritten: 7}
	wireTest(t, nil, maintainer)

	out, err := execute(t, "normalize")

	require.NoError(t, err)
	assert.Equal(t, 1, maintainer.calls)
	assert.Contains(t, out, "Normalized 7 row(s).")
}

func TestNormalizeCmd_PropagatesError(t *testing.T) {
	maintainer := &fakeMaintainer{err: errors.New("worksheet not found")}
	wireTest(t, nil, maintainer)

	_, err := execute(t, "normalize")

	assert.ErrorContains(t, err, "worksheet not found")
}

func TestNormalizeCmd_NotConfigured(t *testing.T) {
	previous := deps
	deps = Dependencies{}
	t.Cleanup(func() {
		deps = previous
		rootCmd.SetArgs(nil)
	})

	_, err := execute(t, "normalize")

	assert.ErrorContains(t, err, "not configured")
}
