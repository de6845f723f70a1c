package secrets

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testKey(b byte) []byte {
	key := make([]byte, 32)
	for i := range key {
		key[i] = b
	}
	return key
}

func TestCipher_RoundTrip(t *testing.T) {
	cipher, err := NewCipher(testKey(0x42))
	require.NoError(t, err)

	token := "shpat_0123456789abcdef"
	sealed, err := cipher.Encrypt(token)
	require.NoError(t, err)
	assert.NotEqual(t, token, sealed)
	assert.False(t, strings.Contains(sealed, token))

	opened, err := cipher.Decrypt(sealed)
	require.NoError(t, err)
	assert.Equal(t, token, opened)
}

func TestCipher_NonceUniquePerEncryption(t *testing.T) {
	cipher, err := NewCipher(testKey(0x42))
	require.NoError(t, err)

	first, err := cipher.Encrypt("same input")
	require.NoError(t, err)
	second, err := cipher.Encrypt("same input")
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
}

func TestCipher_WrongKeyFails(t *testing.T) {
	cipher, err := NewCipher(testKey(0x42))
	require.NoError(t, err)
	other, err := NewCipher(testKey(0x43))
	require.NoError(t, err)

	sealed, err := cipher.Encrypt("secret token")
	require.NoError(t, err)

	_, err = other.Decrypt(sealed)
	assert.ErrorIs(t, err, ErrInvalidCiphertext)
}

func TestCipher_RejectsBadInput(t *testing.T) {
	_, err := NewCipher([]byte("short"))
	assert.ErrorIs(t, err, ErrInvalidKey)

	cipher, err := NewCipher(testKey(0x01))
	require.NoError(t, err)

	_, err = cipher.Decrypt("not!!base64%%")
	assert.ErrorIs(t, err, ErrInvalidCiphertext)

	_, err = cipher.Decrypt("c2hvcnQ")
	assert.ErrorIs(t, err, ErrInvalidCiphertext)
}
