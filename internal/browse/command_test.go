package browse

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lookat/internal/errors"
)

func TestRunCancelled(t *testing.T) {
	s, _ := loadABC(t)
	p := &fakePrompter{err: errors.ErrUserCancelled}

	err := s.Run(CmdJumpToIndex, p)
	require.Error(t, err)
	assert.True(t, errors.IsUserCancelled(err))
	assert.Equal(t, []PromptKind{PromptIndex}, p.asked)

	cur, _ := s.Current()
	assert.Equal(t, "/w/a.txt", cur)
}

func TestRunPrompts(t *testing.T) {
	s, _ := loadABC(t)

	require.NoError(t, s.Run(CmdJumpToIndex, &fakePrompter{answer: " 2 "}))
	cur, _ := s.Current()
	assert.Equal(t, "/w/c.txt", cur)

	p := &fakePrompter{answer: "name-desc"}
	require.NoError(t, s.Run(CmdSort, p))
	assert.Equal(t, []PromptKind{PromptComparator}, p.asked)
	assert.Equal(t, []string{"/w/c.txt", "/w/b.txt", "/w/a.txt"}, s.Paths())
}

func TestExecute(t *testing.T) {
	t.Run("invalid index", func(t *testing.T) {
		s, _ := loadABC(t)
		err := s.Execute(CmdJumpToIndex, "abc")
		require.Error(t, err)
		assert.True(t, errors.IsInvalidInputError(err))
	})

	t.Run("invalid regexp", func(t *testing.T) {
		s, _ := loadABC(t)
		err := s.Execute(CmdRetainMatching, "(")
		require.Error(t, err)
		assert.True(t, errors.IsInvalidPredicate(err))
		assert.Len(t, s.Paths(), 3)
	})

	t.Run("unknown comparator", func(t *testing.T) {
		s, _ := loadABC(t)
		assert.True(t, errors.IsInvalidComparator(s.Execute(CmdSort, "shuffle")))
	})

	t.Run("remove matching", func(t *testing.T) {
		s, _ := loadABC(t)
		require.NoError(t, s.Execute(CmdRemoveMatching, `a\.txt$`))
		assert.Equal(t, []string{"/w/b.txt", "/w/c.txt"}, s.Paths())
	})

	t.Run("move to index", func(t *testing.T) {
		s, _ := loadABC(t)
		require.NoError(t, s.Execute(CmdMoveToIndex, "-1"))
		assert.Equal(t, []string{"/w/b.txt", "/w/c.txt", "/w/a.txt"}, s.Paths())
	})

	t.Run("jump to path resolves fuzzily", func(t *testing.T) {
		s, _ := loadABC(t)
		require.NoError(t, s.Execute(CmdJumpToPath, "c"))
		cur, _ := s.Current()
		assert.Equal(t, "/w/c.txt", cur)

		require.NoError(t, s.Execute(CmdJumpToPath, "/w/b.txt"))
		cur, _ = s.Current()
		assert.Equal(t, "/w/b.txt", cur)
	})

	t.Run("jump to unknown path is silent", func(t *testing.T) {
		s, _ := loadABC(t)
		require.NoError(t, s.Execute(CmdJumpToPath, "zzz"))
		cur, _ := s.Current()
		assert.Equal(t, "/w/a.txt", cur)
	})

	t.Run("append glob", func(t *testing.T) {
		s, _ := newTestSession(t, map[string]string{"/w/a.txt": "a", "/w/n.md": "# n"})
		require.NoError(t, s.Execute(CmdLoadGlob, "*.txt"))
		require.NoError(t, s.Execute(CmdAppendGlob, "*.md"))
		assert.Equal(t, []string{"/w/a.txt", "/w/n.md"}, s.Paths())
	})
}

func TestCommandNames(t *testing.T) {
	assert.Equal(t, "search-forward", CmdSearchForward.String())
	assert.Equal(t, PromptPath, CmdInsertFile.PromptKind())
	assert.Contains(t, CmdSort.Label(), "extension")
	assert.Equal(t, "unknown", Command(99).String())
}

func TestSearch(t *testing.T) {
	t.Run("within the current file", func(t *testing.T) {
		s, host := loadABC(t)
		require.NoError(t, s.Advance(1))
		require.NoError(t, s.SearchForward(regexp.MustCompile(`needle`)))
		cur, _ := s.Current()
		assert.Equal(t, "/w/b.txt", cur)
		assert.Equal(t, 2, host.surface.Cursor)
	})

	t.Run("across files", func(t *testing.T) {
		s, host := loadABC(t)
		require.NoError(t, s.SearchForward(regexp.MustCompile(`needle`)))
		cur, _ := s.Current()
		assert.Equal(t, "/w/b.txt", cur)
		assert.Equal(t, 2, host.surface.Cursor)

		require.NoError(t, s.SearchForward(regexp.MustCompile(`needle`)))
		cur, _ = s.Current()
		assert.Equal(t, "/w/c.txt", cur)
		assert.Equal(t, 3, host.surface.Cursor)

		require.NoError(t, s.SearchBackward(regexp.MustCompile(`alpha`)))
		cur, _ = s.Current()
		assert.Equal(t, "/w/a.txt", cur)
		assert.Equal(t, 0, host.surface.Cursor)
	})

	t.Run("miss returns to the origin", func(t *testing.T) {
		s, host := loadABC(t)
		require.NoError(t, s.Advance(1))
		host.surface.Cursor = 1

		err := s.SearchForward(regexp.MustCompile(`nowhere`))
		require.Error(t, err)
		assert.True(t, errors.IsNotFound(err))
		cur, _ := s.Current()
		assert.Equal(t, "/w/b.txt", cur)
		assert.Equal(t, 1, host.surface.Cursor)
		assert.Equal(t, []string{"/w/a.txt"}, s.Snapshot().Before)

		err = s.SearchBackward(regexp.MustCompile(`nowhere`))
		assert.True(t, errors.IsNotFound(err))
		cur, _ = s.Current()
		assert.Equal(t, "/w/b.txt", cur)
	})

	t.Run("needs a current file", func(t *testing.T) {
		s, _ := newTestSession(t, abc)
		err := s.SearchForward(regexp.MustCompile(`x`))
		assert.True(t, errors.IsNoCurrentFile(err))
		assert.True(t, errors.IsInvalidPredicate(s.SearchForward(nil)))
	})
}
