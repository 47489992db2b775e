// domain/note_test.go
package domain

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShareTokenReuseAcrossEpisodes(t *testing.T) {
	note := &Note{ID: uuid.New(), OwnerID: uuid.New()}

	require.NoError(t, note.EnableSharing())
	first := note.ShareID
	require.NotEmpty(t, first)
	assert.True(t, note.IsShared)

	note.DisableSharing()
	assert.False(t, note.IsShared)
	assert.Equal(t, first, note.ShareID, "token survives unsharing")

	require.NoError(t, note.EnableSharing())
	assert.Equal(t, first, note.ShareID, "token is minted once and reused")
	assert.True(t, note.IsShared)
}

func TestNewShareTokenIsOpaqueAndUnique(t *testing.T) {
	seen := make(map[string]struct{})
	for i := 0; i < 100; i++ {
		token, err := NewShareToken()
		require.NoError(t, err)
		assert.GreaterOrEqual(t, len(token), 32)
		_, dup := seen[token]
		assert.False(t, dup, "token collision")
		seen[token] = struct{}{}
	}
}

func TestPublicProjectionOmitsOwnerFields(t *testing.T) {
	owner := uuid.New()
	note := &Note{
		ID:          uuid.New(),
		OwnerID:     owner,
		Title:       "Groceries",
		Content:     "milk eggs bread",
		ContentHTML: "<p>milk eggs bread</p>",
		Excerpt:     "milk eggs bread",
		IsShared:    true,
		IsPinned:    true,
		WordCount:   3,
		ReadingTime: 1,
	}

	pub := note.Public()
	assert.Equal(t, "Groceries", pub.Title)
	assert.Equal(t, "<p>milk eggs bread</p>", pub.ContentHTML)
	assert.Equal(t, 3, pub.WordCount)
}

func TestTextDerivations(t *testing.T) {
	assert.Equal(t, 0, WordCount(""))
	assert.Equal(t, 3, WordCount("  one\ttwo\nthree "))

	assert.Equal(t, 0, ReadingTime(0))
	assert.Equal(t, 1, ReadingTime(1))
	assert.Equal(t, 1, ReadingTime(200))
	assert.Equal(t, 2, ReadingTime(201))

	assert.Equal(t, "", Excerpt(""))
	assert.Equal(t, "one two three", Excerpt("one\n\ntwo   three"))

	long := Excerpt(strings.Repeat("word ", 100))
	assert.LessOrEqual(t, len([]rune(long)), excerptRunes+1)
	assert.Contains(t, long, "…")
}

func TestNormalizePhone(t *testing.T) {
	got, err := NormalizePhone("(415) 555-2671")
	require.NoError(t, err)
	assert.Equal(t, "+14155552671", got)

	got, err = NormalizePhone("+44 20 7946 0958")
	require.NoError(t, err)
	assert.Equal(t, "+442079460958", got)

	got, err = NormalizePhone("")
	require.NoError(t, err)
	assert.Empty(t, got)

	_, err = NormalizePhone("not a phone")
	assert.True(t, IsValidation(err))
}
