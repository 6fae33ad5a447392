package utils

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("s3cret")
	require.NoError(t, err)
	require.NotEqual(t, "s3cret", hash)

	require.True(t, CheckPassword(hash, "s3cret"))
	require.False(t, CheckPassword(hash, "wrong"))
	require.False(t, CheckPassword("", "s3cret"))
}

func TestSanitizeStripsScripts(t *testing.T) {
	clean := Sanitize(`hello <script>alert(1)</script><b>world</b>`)
	require.NotContains(t, clean, "script")
	require.Contains(t, clean, "hello")
}

func TestUniqueUint(t *testing.T) {
	require.Equal(t, []uint{3, 1, 2}, UniqueUint([]uint{3, 1, 3, 2, 1}))
	require.Empty(t, UniqueUint(nil))
}
