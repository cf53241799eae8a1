package otp

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGenerateCode(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		code, err := GenerateCode()
		assert.NoError(t, err)
		assert.Len(t, code, CodeLength)
		for _, c := range code {
			assert.True(t, c >= '0' && c <= '9', "code must be numeric: %q", code)
		}
		seen[code] = true
	}
	// 50 draws from a million-code space colliding into one value would mean
	// the generator is broken.
	assert.Greater(t, len(seen), 1)
}

func TestIssueAndMatch(t *testing.T) {
	now := time.Now()
	rec, code, err := Issue(now, DefaultTTL)
	assert.NoError(t, err)
	assert.Len(t, code, CodeLength)
	assert.NotContains(t, rec.CodeHash, code, "plaintext must not leak into the hash")
	assert.Equal(t, now.Add(DefaultTTL), rec.ExpiresAt)

	assert.True(t, Matches(rec, code))
	assert.False(t, Matches(rec, "000000"))
}

func TestHashCodeSaltDependence(t *testing.T) {
	h1 := HashCode("482913", "salt-a")
	h2 := HashCode("482913", "salt-b")
	assert.NotEqual(t, h1, h2)
	assert.Equal(t, h1, HashCode("482913", "salt-a"))
}

func TestReissueInvalidatesOldCode(t *testing.T) {
	now := time.Now()
	first, firstCode, err := Issue(now, DefaultTTL)
	assert.NoError(t, err)
	second, secondCode, err := Issue(now, DefaultTTL)
	assert.NoError(t, err)

	if firstCode != secondCode {
		assert.False(t, Matches(second, firstCode))
	}
	assert.True(t, Matches(second, secondCode))
	assert.True(t, Matches(first, firstCode))
}
