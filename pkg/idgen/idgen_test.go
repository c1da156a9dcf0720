package idgen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndDecode(t *testing.T) {
	require.NoError(t, InitSqidsEncoder())

	id, err := GeneratePublicID(42, EntityTypeReply)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, len(id), 4)

	seq, typ, err := DecodePublicID(id)
	require.NoError(t, err)
	assert.Equal(t, uint64(42), seq)
	assert.Equal(t, EntityTypeReply, typ)
}

func TestGeneratePublicID_DistinctPerSequence(t *testing.T) {
	require.NoError(t, InitSqidsEncoder())

	seen := make(map[string]struct{})
	for i := uint64(1); i <= 500; i++ {
		id, err := GeneratePublicID(i, EntityTypeComment)
		require.NoError(t, err)
		_, dup := seen[id]
		require.False(t, dup, "duplicate id %s", id)
		seen[id] = struct{}{}
	}
}

func TestSeededAlphabetChangesIDs(t *testing.T) {
	require.NoError(t, InitSqidsEncoder())
	plain, err := GeneratePublicID(1, EntityTypeComment)
	require.NoError(t, err)

	require.NoError(t, InitSqidsEncoderWithSeed("0123456789abcdef"))
	defer func() { require.NoError(t, InitSqidsEncoder()) }()
	seeded, err := GeneratePublicID(1, EntityTypeComment)
	require.NoError(t, err)

	assert.NotEqual(t, plain, seeded)
}

func TestDecodePublicID_Invalid(t *testing.T) {
	require.NoError(t, InitSqidsEncoder())

	_, _, err := DecodePublicID("1")
	assert.Error(t, err)
}

func TestGenerateRandomSeed(t *testing.T) {
	a, err := GenerateRandomSeed()
	require.NoError(t, err)
	b, err := GenerateRandomSeed()
	require.NoError(t, err)

	assert.Len(t, a, 32)
	assert.NotEqual(t, a, b)
}
