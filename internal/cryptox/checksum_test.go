package cryptox

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestChecksum(t *testing.T) {
	require.Equal(t, "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855", Checksum(nil))
	require.Equal(t, "2cf24dba5fb0a30e26e83b2ac5b9e29e1b161e5c1fa7425e73043362938b9824", Checksum([]byte("hello")))
}

func TestVerifyChecksum(t *testing.T) {
	data := []byte("PK\x03\x04")
	sum := Checksum(data)

	require.NoError(t, VerifyChecksum(data, sum))
	require.NoError(t, VerifyChecksum(data, ""))
	require.ErrorIs(t, VerifyChecksum([]byte("other"), sum), ErrChecksumMismatch)
}
