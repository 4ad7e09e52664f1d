package security

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-stockledger/pkg/config"
)

func testConfig() config.PasswordConfig {
	return config.PasswordConfig{
		ArgonMemoryKB:    1024,
		ArgonTime:        1,
		ArgonParallelism: 1,
		ArgonSaltLen:     16,
		ArgonKeyLen:      32,
	}
}

func TestHashAndVerify(t *testing.T) {
	hash, err := HashPassword("hunter22", testConfig())
	require.NoError(t, err)
	assert.Contains(t, hash, "$argon2id$")
	assert.NotContains(t, hash, "hunter22")

	ok, err := VerifyPassword("hunter22", hash)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = VerifyPassword("hunter23", hash)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestHashIsSalted(t *testing.T) {
	first, err := HashPassword("hunter22", testConfig())
	require.NoError(t, err)
	second, err := HashPassword("hunter22", testConfig())
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
}

func TestHashEmptyPassword(t *testing.T) {
	_, err := HashPassword("", testConfig())
	require.Error(t, err)
}

func TestVerifyMalformedHash(t *testing.T) {
	for _, encoded := range []string{"", "plaintext", "$bcrypt$whatever", "$argon2id$v=19$bad"} {
		_, err := VerifyPassword("hunter22", encoded)
		assert.ErrorIs(t, err, ErrInvalidHash, "encoded %q", encoded)
	}
}

func TestVerifySurvivesConfigChange(t *testing.T) {
	hash, err := HashPassword("hunter22", testConfig())
	require.NoError(t, err)

	// Parameters are embedded in the hash, so verification does not need the
	// original config.
	ok, err := VerifyPassword("hunter22", hash)
	require.NoError(t, err)
	assert.True(t, ok)
}
