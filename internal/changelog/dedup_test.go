package changelog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDedupSet_KeySensitivity(t *testing.T) {
	t.Parallel()

	set := NewDedupSet()
	set.Add(ConventionalCommit{Type: "feat", Scope: "ui", Subject: "x"})

	t.Run("case-insensitive collision", func(t *testing.T) {
		assert.True(t, set.Has(ConventionalCommit{Type: "FEAT", Scope: "UI", Subject: "X"}))
	})

	t.Run("different scope does not collide", func(t *testing.T) {
		assert.False(t, set.Has(ConventionalCommit{Type: "feat", Scope: "api", Subject: "x"}))
	})

	t.Run("different type does not collide", func(t *testing.T) {
		assert.False(t, set.Has(ConventionalCommit{Type: "fix", Scope: "ui", Subject: "x"}))
	})

	t.Run("different subject does not collide", func(t *testing.T) {
		assert.False(t, set.Has(ConventionalCommit{Type: "feat", Scope: "ui", Subject: "y"}))
	})

	t.Run("hash is irrelevant to identity", func(t *testing.T) {
		assert.True(t, set.Has(ConventionalCommit{Hash: "fffffff", Type: "feat", Scope: "ui", Subject: "x"}))
	})
}

func TestDedupSet_AddIsIdempotent(t *testing.T) {
	t.Parallel()

	set := NewDedupSet()
	c := ConventionalCommit{Type: "fix", Subject: "a"}

	set.Add(c)
	set.Add(c)
	assert.True(t, set.Has(c))
}

func TestDedupSet_Filter(t *testing.T) {
	t.Parallel()

	t.Run("filters duplicates within one call and preserves order", func(t *testing.T) {
		t.Parallel()

		set := NewDedupSet()
		commits := []ConventionalCommit{
			{Hash: "a1", Type: "feat", Subject: "one"},
			{Hash: "b2", Type: "fix", Subject: "two"},
			{Hash: "c3", Type: "feat", Subject: "one"}, // same change, new hash
		}

		kept := set.Filter(commits)

		require.Len(t, kept, 2)
		assert.Equal(t, "a1", kept[0].Hash)
		assert.Equal(t, "b2", kept[1].Hash)
	})

	t.Run("remembers earlier calls", func(t *testing.T) {
		t.Parallel()

		set := NewDedupSet()
		first := set.Filter([]ConventionalCommit{{Hash: "a1", Type: "fix", Subject: "boom"}})
		require.Len(t, first, 1)

		second := set.Filter([]ConventionalCommit{
			{Hash: "z9", Type: "fix", Subject: "boom"}, // cherry-picked
			{Hash: "b2", Type: "feat", Subject: "new"},
		})

		require.Len(t, second, 1)
		assert.Equal(t, "b2", second[0].Hash)
	})

	t.Run("empty input yields empty output", func(t *testing.T) {
		t.Parallel()

		set := NewDedupSet()
		assert.Empty(t, set.Filter(nil))
	})
}
