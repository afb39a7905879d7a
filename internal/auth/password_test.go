package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testParams = Argon2Params{Time: 1, Memory: 8 * 1024, Threads: 1, KeyLen: 32, SaltLen: 16}

func TestArgon2id_HashAndVerify(t *testing.T) {
	h := NewArgon2id(testParams)

	encoded, err := h.Hash("hunter2")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(encoded, "$argon2id$v=19$m=8192,t=1,p=1$"))

	ok, err := h.Verify("hunter2", encoded)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = h.Verify("hunter3", encoded)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestArgon2id_SaltedHashesDiffer(t *testing.T) {
	h := NewArgon2id(testParams)

	first, err := h.Hash("same")
	require.NoError(t, err)
	second, err := h.Hash("same")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestArgon2id_VerifyUsesStoredParams(t *testing.T) {
	encoded, err := NewArgon2id(testParams).Hash("pw")
	require.NoError(t, err)

	ok, err := NewArgon2id(Argon2Params{Time: 2, Memory: 16 * 1024, Threads: 2, KeyLen: 16, SaltLen: 8}).Verify("pw", encoded)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestArgon2id_EmptyPassword(t *testing.T) {
	_, err := NewArgon2id(testParams).Hash("")
	assert.ErrorIs(t, err, ErrEmptyPassword)
}

func TestArgon2id_InvalidHash(t *testing.T) {
	h := NewArgon2id(testParams)

	tests := []string{
		"",
		"plain",
		"$bcrypt$v=19$m=1,t=1,p=1$c2FsdA$a2V5",
		"$argon2id$v=18$m=1,t=1,p=1$c2FsdA$a2V5",
		"$argon2id$v=19$garbage$c2FsdA$a2V5",
		"$argon2id$v=19$m=1,t=1,p=1$!!!$a2V5",
	}
	for _, encoded := range tests {
		_, err := h.Verify("pw", encoded)
		assert.ErrorIs(t, err, ErrInvalidHash, encoded)
	}
}

func TestRandomPassword(t *testing.T) {
	first, err := RandomPassword()
	require.NoError(t, err)
	second, err := RandomPassword()
	require.NoError(t, err)

	assert.Len(t, first, 43)
	assert.NotEqual(t, first, second)
}
