package password

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerify(t *testing.T) {
	hashed, err := Hash("secret1")
	require.NoError(t, err)
	assert.NotEqual(t, "secret1", hashed)

	assert.True(t, Verify("secret1", hashed))
	assert.False(t, Verify("secret2", hashed))
}

func TestValidate(t *testing.T) {
	assert.False(t, Validate("12345"))
	assert.True(t, Validate("123456"))
}
