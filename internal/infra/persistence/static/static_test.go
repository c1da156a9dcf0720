package static

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anzhiyu-c/blogcms/pkg/constant"
)

func TestDecode_DefaultDataset(t *testing.T) {
	ds, err := Decode(DefaultDataset())
	require.NoError(t, err)

	assert.Len(t, ds.Posts, 6)
	assert.Len(t, ds.Categories, 5)
	assert.Len(t, ds.Comments, 3)

	first := ds.Comments[0]
	require.Len(t, first.Replies, 1)
	reply := first.Replies[0]
	require.NotNil(t, reply.ParentID)
	assert.Equal(t, "1", *reply.ParentID)
	assert.Equal(t, "2", reply.ID)

	p, ok := ds.Post("4")
	require.True(t, ok)
	assert.Equal(t, "design", p.Category.Slug)
	assert.Equal(t, time.Date(2024, 12, 12, 16, 45, 0, 0, time.UTC), p.PublishedAt.UTC())
}

func TestDecode_Rejects(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"重复的文章ID", "posts:\n  - id: \"1\"\n  - id: \"1\"\n"},
		{"缺少文章ID", "posts:\n  - title: x\n"},
		{"重复的评论ID", "comments:\n  - id: a\n    post_id: \"1\"\n    replies:\n      - id: a\n"},
		{"回复嵌套回复", "comments:\n  - id: a\n    replies:\n      - id: b\n        replies:\n          - id: c\n"},
		{"未知字段", "posts:\n  - id: \"1\"\n    slug: x\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode([]byte(tt.data))
			assert.Error(t, err)
		})
	}
}

func TestDecode_ReplyInheritsPostAndParent(t *testing.T) {
	data := `comments:
  - id: a
    post_id: "7"
    parent_id: bogus
    replies:
      - id: b
        parent_id: wrong
`
	ds, err := Decode([]byte(data))
	require.NoError(t, err)

	top := ds.Comments[0]
	assert.Nil(t, top.ParentID)
	assert.Equal(t, "7", top.Replies[0].PostID)
	assert.Equal(t, "a", *top.Replies[0].ParentID)
}

func TestCommentRepo_FindByPostID(t *testing.T) {
	src, err := NewSource("")
	require.NoError(t, err)
	repo := NewCommentRepo(src)
	ctx := context.Background()

	comments, err := repo.FindByPostID(ctx, "1")
	require.NoError(t, err)
	require.Len(t, comments, 2)
	assert.Equal(t, "1", comments[0].ID)
	assert.Equal(t, "3", comments[1].ID)
	assert.Len(t, comments[0].Replies, 1)
	for _, c := range comments {
		assert.Equal(t, "1", c.PostID)
	}

	other, err := repo.FindByPostID(ctx, "2")
	require.NoError(t, err)
	require.Len(t, other, 1)
	assert.Equal(t, "4", other[0].ID)

	none, err := repo.FindByPostID(ctx, "9")
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestCommentRepo_ReturnsCopies(t *testing.T) {
	src, err := NewSource("")
	require.NoError(t, err)
	repo := NewCommentRepo(src)
	ctx := context.Background()

	first, err := repo.FindByPostID(ctx, "1")
	require.NoError(t, err)
	first[0].Content = "changed"
	first[0].Replies = nil

	again, err := repo.FindByPostID(ctx, "1")
	require.NoError(t, err)
	assert.NotEqual(t, "changed", again[0].Content)
	assert.Len(t, again[0].Replies, 1)
}

func TestCommentRepo_DropsForeignReplies(t *testing.T) {
	data := `comments:
  - id: a
    post_id: "1"
    replies:
      - id: b
        post_id: "2"
      - id: c
`
	ds, err := Decode([]byte(data))
	require.NoError(t, err)
	repo := NewCommentRepo(NewSourceFromDataset(ds))

	comments, err := repo.FindByPostID(context.Background(), "1")
	require.NoError(t, err)
	require.Len(t, comments, 1)
	require.Len(t, comments[0].Replies, 1)
	assert.Equal(t, "c", comments[0].Replies[0].ID)
}

func TestArticleRepo(t *testing.T) {
	src, err := NewSource("")
	require.NoError(t, err)
	repo := NewArticleRepo(src)
	ctx := context.Background()

	all, err := repo.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 6)
	assert.Equal(t, "1", all[0].ID)

	all[0].Tags[0] = "mutated"
	p, err := repo.FindByID(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, "Web Development", p.Tags[0])

	_, err = repo.FindByID(ctx, "nope")
	assert.ErrorIs(t, err, constant.ErrNotFound)

	cats, err := repo.ListCategories(ctx)
	require.NoError(t, err)
	require.Len(t, cats, 5)
	assert.Equal(t, "#2563EB", cats[0].Color)
}

func TestSource_ReloadKeepsPreviousOnError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "blog.yaml")
	require.NoError(t, os.WriteFile(path, DefaultDataset(), 0644))

	src, err := NewSource(path)
	require.NoError(t, err)

	var reloaded int
	src.OnReload(func(ds *Dataset) { reloaded++ })

	require.NoError(t, os.WriteFile(path, []byte("posts: [ {"), 0644))
	assert.Error(t, src.Reload())
	ds, err := src.Dataset()
	require.NoError(t, err)
	assert.Len(t, ds.Posts, 6)
	assert.Equal(t, 0, reloaded)

	require.NoError(t, os.WriteFile(path, []byte("posts:\n  - id: \"42\"\n"), 0644))
	require.NoError(t, src.Reload())
	ds, err = src.Dataset()
	require.NoError(t, err)
	assert.Len(t, ds.Posts, 1)
	assert.Equal(t, 1, reloaded)
}

func TestSource_WatchReloadsOnWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "blog.yaml")
	require.NoError(t, os.WriteFile(path, DefaultDataset(), 0644))

	src, err := NewSource(path)
	require.NoError(t, err)
	src.debounce = 20 * time.Millisecond

	done := make(chan *Dataset, 1)
	src.OnReload(func(ds *Dataset) {
		select {
		case done <- ds:
		default:
		}
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, src.Watch(ctx))
	defer src.Stop()

	require.NoError(t, os.WriteFile(path, []byte("posts:\n  - id: \"7\"\n"), 0644))

	select {
	case ds := <-done:
		assert.Len(t, ds.Posts, 1)
	case <-time.After(3 * time.Second):
		t.Fatal("dataset was not reloaded")
	}
}

func TestNewSource_MissingFile(t *testing.T) {
	_, err := NewSource(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
