package indexer

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWalk_DepthBound(t *testing.T) {
	root := t.TempDir()
	write(t, root, "a.png", 1)
	write(t, root, "sub/b.jpg", 1)
	write(t, root, "sub/deep/c.gif", 1)
	write(t, root, "sub/deep/more/d.gif", 1)
	write(t, root, "x/y/z/w/e.gif", 1)

	w := &Walker{}
	entries, err := w.Walk(context.Background(), localRoot(root), DefaultMaxDepth)
	require.NoError(t, err)

	assert.Equal(t, []string{"a.png", "sub/b.jpg", "sub/deep/c.gif"}, relPaths(entries))
	assert.Equal(t, 0, entries[0].Depth)
	assert.Equal(t, 1, entries[1].Depth)
	assert.Equal(t, 2, entries[2].Depth)
	assert.Equal(t, filepath.Join(root, "sub", "deep", "c.gif"), entries[2].AbsPath)
}

func TestWalk_SmallerBounds(t *testing.T) {
	root := t.TempDir()
	write(t, root, "a.png", 1)
	write(t, root, "sub/b.jpg", 1)

	w := &Walker{}
	entries, err := w.Walk(context.Background(), localRoot(root), 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"a.png"}, relPaths(entries))

	entries, err = w.Walk(context.Background(), localRoot(root), 0)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestWalk_LexicalOrder(t *testing.T) {
	root := t.TempDir()
	for _, rel := range []string{"sub/z.png", "b.png", "a/x.png", "sub.png", "B.png", "a-b.png", "a/c/d.png", "a/b.png"} {
		write(t, root, rel, 1)
	}

	w := &Walker{}
	entries, err := w.Walk(context.Background(), localRoot(root), DefaultMaxDepth)
	require.NoError(t, err)

	assert.Equal(t, []string{
		"B.png",
		"a-b.png",
		"a/b.png",
		"a/c/d.png",
		"a/x.png",
		"b.png",
		"sub.png",
		"sub/z.png",
	}, relPaths(entries))
}

func TestWalk_Deterministic(t *testing.T) {
	root := t.TempDir()
	for _, rel := range []string{"m.txt", "c/a.txt", "c/b/a.txt", "k.txt", "a.txt"} {
		write(t, root, rel, 3)
	}

	w := &Walker{}
	first, err := w.Walk(context.Background(), localRoot(root), DefaultMaxDepth)
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		again, err := w.Walk(context.Background(), localRoot(root), DefaultMaxDepth)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestWalk_RescansEachCall(t *testing.T) {
	root := t.TempDir()
	write(t, root, "a.png", 1)

	w := &Walker{}
	seq := w.Entries(context.Background(), localRoot(root), DefaultMaxDepth)

	var first []string
	for e, err := range seq {
		require.NoError(t, err)
		first = append(first, e.RelPath)
	}
	write(t, root, "b.png", 1)

	var second []string
	for e, err := range seq {
		require.NoError(t, err)
		second = append(second, e.RelPath)
	}
	assert.Equal(t, []string{"a.png"}, first)
	assert.Equal(t, []string{"a.png", "b.png"}, second)
}

func TestWalk_SkipsHiddenExcludedAndSpecial(t *testing.T) {
	root := t.TempDir()
	write(t, root, "a.png", 1)
	write(t, root, ".hidden.png", 1)
	write(t, root, ".git/objects/x.png", 1)
	write(t, root, "node_modules/pkg/logo.png", 1)
	write(t, root, "upload.tmp", 1)
	if err := os.Symlink(filepath.Join(root, "a.png"), filepath.Join(root, "link.png")); err != nil {
		t.Logf("symlinks unsupported: %v", err)
	}

	w := &Walker{Exclude: []string{"node_modules", "*.tmp"}}
	entries, err := w.Walk(context.Background(), localRoot(root), DefaultMaxDepth)
	require.NoError(t, err)
	assert.Equal(t, []string{"a.png"}, relPaths(entries))
}

func TestWalk_EmptyDirectoriesYieldNothing(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "empty", "nested"), 0o755))

	w := &Walker{}
	entries, err := w.Walk(context.Background(), localRoot(root), DefaultMaxDepth)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestWalk_SizesReported(t *testing.T) {
	root := t.TempDir()
	write(t, root, "report.pdf", 2048)

	w := &Walker{}
	entries, err := w.Walk(context.Background(), localRoot(root), DefaultMaxDepth)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, int64(2048), entries[0].Size)
}

func TestWalk_UnreadableSubdirectoryIsSkipped(t *testing.T) {
	root := t.TempDir()
	write(t, root, "a.png", 1)
	write(t, root, "broken/b.png", 1)
	write(t, root, "ok/c.png", 1)

	r := localRoot(root)
	r.FS = brokenDirFS{FileSystem: r.FS, broken: "broken"}

	w := &Walker{}
	entries, err := w.Walk(context.Background(), r, DefaultMaxDepth)
	require.NoError(t, err)
	assert.Equal(t, []string{"a.png", "ok/c.png"}, relPaths(entries))
}

func TestWalk_FileRemovedDuringWalkKeepsSiblings(t *testing.T) {
	root := t.TempDir()
	write(t, root, "a.png", 1)
	write(t, root, "sub/a.png", 1)
	write(t, root, "sub/b.png", 1)
	write(t, root, "sub/c.png", 1)

	r := localRoot(root)
	r.FS = removeBeforeListFS{FileSystem: r.FS, dir: "sub", remove: filepath.Join(root, "sub", "b.png")}

	entries, err := (&Walker{}).Walk(context.Background(), r, DefaultMaxDepth)
	require.NoError(t, err)
	assert.Equal(t, []string{"a.png", "sub/a.png", "sub/c.png"}, relPaths(entries))
}

func TestWalk_MissingRoot(t *testing.T) {
	root := filepath.Join(t.TempDir(), "gone")

	w := &Walker{}
	entries, err := w.Walk(context.Background(), localRoot(root), DefaultMaxDepth)
	require.Error(t, err)
	assert.Nil(t, entries)
	assert.ErrorIs(t, err, ErrWalk)

	var walkErr *WalkError
	require.True(t, errors.As(err, &walkErr))
	assert.Equal(t, root, walkErr.Path)
}

func TestWalk_RootDeletedAfterResolution(t *testing.T) {
	root := filepath.Join(t.TempDir(), "files")
	write(t, root, "a.png", 1)
	write(t, root, "sub/b.png", 1)

	r := localRoot(root)
	require.NoError(t, os.RemoveAll(root))

	w := &Walker{}
	entries, err := w.Walk(context.Background(), r, DefaultMaxDepth)
	assert.ErrorIs(t, err, ErrWalk)
	assert.Nil(t, entries)
}

func TestWalk_Cancelled(t *testing.T) {
	root := t.TempDir()
	write(t, root, "a.png", 1)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	w := &Walker{}
	entries, err := w.Walk(ctx, localRoot(root), DefaultMaxDepth)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, entries)
}

func TestWalk_CancelledMidWalk(t *testing.T) {
	root := t.TempDir()
	write(t, root, "a.png", 1)
	write(t, root, "b.png", 1)
	write(t, root, "c.png", 1)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	w := &Walker{}
	var seen []string
	var gotErr error
	for e, err := range w.Entries(ctx, localRoot(root), DefaultMaxDepth) {
		if err != nil {
			gotErr = err
			break
		}
		seen = append(seen, e.RelPath)
		cancel()
	}
	assert.Equal(t, []string{"a.png"}, seen)
	assert.ErrorIs(t, gotErr, context.Canceled)
}

func TestEntries_EarlyBreak(t *testing.T) {
	root := t.TempDir()
	write(t, root, "a.png", 1)
	write(t, root, "sub/b.png", 1)
	write(t, root, "sub/c.png", 1)

	w := &Walker{}
	var seen []string
	for e, err := range w.Entries(context.Background(), localRoot(root), DefaultMaxDepth) {
		require.NoError(t, err)
		seen = append(seen, e.RelPath)
		if len(seen) == 2 {
			break
		}
	}
	assert.Equal(t, []string{"a.png", "sub/b.png"}, seen)
}

func TestWalk_Concurrent(t *testing.T) {
	root := t.TempDir()
	for _, rel := range []string{"a.png", "b/c.png", "b/d/e.png", "f/g.png"} {
		write(t, root, rel, 1)
	}

	w := &Walker{}
	want, err := w.Walk(context.Background(), localRoot(root), DefaultMaxDepth)
	require.NoError(t, err)

	var wg sync.WaitGroup
	results := make([][]FileEntry, 8)
	errs := make([]error, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = w.Walk(context.Background(), localRoot(root), DefaultMaxDepth)
		}(i)
	}
	wg.Wait()

	for i := range results {
		require.NoError(t, errs[i])
		assert.Equal(t, want, results[i])
	}
}
