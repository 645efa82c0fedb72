package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"membergate/internal/claims/models"
	"membergate/pkg/testutil"
)

func TestInMemoryLoadByID(t *testing.T) {
	s := NewInMemory()
	s.Put(&models.Member{ID: 1, FamilyName: "Durand", GivenName: "René", Active: true})

	member, err := s.LoadByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "Durand", member.FamilyName)

	_, err = s.LoadByID(context.Background(), 42)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestInMemoryReturnsSnapshots(t *testing.T) {
	s := NewInMemory()
	s.Put(&models.Member{ID: 1, Email: "rene@example.org"})

	first, err := s.LoadByID(context.Background(), 1)
	require.NoError(t, err)
	first.Email = "mutated@example.org"

	second, err := s.LoadByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "rene@example.org", second.Email)
}

func TestInMemorySocials(t *testing.T) {
	s := NewInMemory()

	socials, err := s.ListSocialsForMember(context.Background(), 1)
	require.NoError(t, err)
	assert.Empty(t, socials)

	s.PutSocials(1, []models.Social{{Type: "mastodon", URL: "https://example.org/@rene"}})
	socials, err = s.ListSocialsForMember(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, socials, 1)
	assert.Equal(t, "mastodon", socials[0].Type)
}

func TestInMemoryConcurrentAccess(t *testing.T) {
	s := NewInMemory()
	for i := 0; i < 10; i++ {
		s.Put(&models.Member{ID: i})
	}

	// Half the readers target ids that are never stored.
	result := testutil.RunConcurrent(20, ErrNotFound, func(idx int) error {
		s.Put(&models.Member{ID: idx % 10})
		_, err := s.LoadByID(context.Background(), idx)
		return err
	})

	assert.Equal(t, int32(10), result.Successes)
	assert.Equal(t, int32(10), result.NotFounds)
	assert.Zero(t, result.Errors)
}
