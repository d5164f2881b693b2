package roster_test

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"

	roster "github.com/rockhard07/Attendance-roster"
)

func TestPreflight_RejectsGarbage(t *testing.T) {
	_, err := roster.Preflight([]byte("this is not a pdf"))
	require.Error(t, err)
	require.True(t, errors.Is(err, roster.ErrUnreadablePDF))
}

func TestPreflight_RejectsEmpty(t *testing.T) {
	_, err := roster.Preflight(nil)
	require.Error(t, err)
	require.True(t, errors.Is(err, roster.ErrUnreadablePDF))
}
