package comment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/anzhiyu-c/blogcms/pkg/constant"
	"github.com/anzhiyu-c/blogcms/pkg/domain/model"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

var fixedNow = time.Date(2026, 10, 1, 9, 30, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

func strPtr(s string) *string { return &s }

// seedComments 两篇文章混在一起的种子，文章 1 有两条顶级评论，其中一条带回复
func seedComments() []*model.Comment {
	return []*model.Comment{
		{
			ID: "1", PostID: "1", Author: "John Doe", Email: "john@example.com", Content: "Great insights!",
			Replies: []*model.Comment{
				{ID: "2", PostID: "1", Author: "Alex", Email: "alex@example.com", Content: "Thanks John!", ParentID: strPtr("1")},
			},
		},
		{ID: "3", PostID: "1", Author: "Maria", Email: "maria@example.com", Content: "Edge computing"},
		{ID: "4", PostID: "2", Author: "Tom", Email: "tom@example.com", Content: "CSS Grid"},
	}
}

func TestNewStore_FiltersSeedByPost(t *testing.T) {
	s := NewStore("1", seedComments(), WithClock(fixedClock))

	snap := s.Snapshot()
	require.Len(t, snap.Comments, 2)
	assert.Equal(t, "1", snap.Comments[0].ID)
	assert.Equal(t, "3", snap.Comments[1].ID)
	require.Len(t, snap.Comments[0].Replies, 1)
	assert.Equal(t, "2", snap.Comments[0].Replies[0].ID)
	assert.Equal(t, 3, snap.Total())
	assert.Contains(t, snap.Comments[0].ContentHTML, "Great insights!")
}

func TestNewStore_SeedEdgeCases(t *testing.T) {
	tests := []struct {
		name    string
		seed    []*model.Comment
		wantIDs []string
		replies int
	}{
		{"空种子", nil, []string{}, 0},
		{"重复ID只保留第一条", []*model.Comment{
			{ID: "a", PostID: "1", Content: "first"},
			{ID: "a", PostID: "1", Content: "second"},
		}, []string{"a"}, 0},
		{"其他文章的回复被丢弃", []*model.Comment{
			{ID: "a", PostID: "1", Replies: []*model.Comment{
				{ID: "b", PostID: "2"},
				{ID: "c"},
			}},
		}, []string{"a"}, 1},
		{"nil 条目被跳过", []*model.Comment{nil, {ID: "a", PostID: "1"}}, []string{"a"}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewStore("1", tt.seed)
			snap := s.Snapshot()
			ids := make([]string, 0, len(snap.Comments))
			replies := 0
			for _, c := range snap.Comments {
				ids = append(ids, c.ID)
				replies += len(c.Replies)
			}
			assert.Equal(t, tt.wantIDs, ids)
			assert.Equal(t, tt.replies, replies)
		})
	}
}

func TestNewStore_ReplyInheritsPost(t *testing.T) {
	seed := []*model.Comment{
		{ID: "a", PostID: "1", Replies: []*model.Comment{{ID: "b", ParentID: strPtr("elsewhere")}}},
	}
	s := NewStore("1", seed)

	r, ok := s.Find("b")
	require.True(t, ok)
	assert.Equal(t, "1", r.PostID)
	require.NotNil(t, r.ParentID)
	assert.Equal(t, "a", *r.ParentID)
}

func TestNewStore_CopiesSeed(t *testing.T) {
	seed := seedComments()
	s := NewStore("1", seed)

	seed[0].Content = "mutated"
	seed[0].Replies[0].Content = "mutated"

	c, ok := s.Find("1")
	require.True(t, ok)
	assert.Equal(t, "Great insights!", c.Content)
	r, ok := s.Find("2")
	require.True(t, ok)
	assert.Equal(t, "Thanks John!", r.Content)
}

func TestSubmitReply_AppendsToParent(t *testing.T) {
	s := NewStore("1", seedComments(), WithClock(fixedClock))

	thread, ok := s.SubmitReply("1", "Nice post!")
	require.True(t, ok)

	parent := thread.Comments[0]
	require.Len(t, parent.Replies, 2)
	reply := parent.Replies[1]
	assert.Equal(t, "Nice post!", reply.Content)
	assert.Equal(t, constant.ReplyAuthorName, reply.Author)
	assert.Equal(t, constant.ReplyAuthorEmail, reply.Email)
	assert.Equal(t, "1", reply.PostID)
	require.NotNil(t, reply.ParentID)
	assert.Equal(t, "1", *reply.ParentID)
	assert.Equal(t, fixedNow, reply.CreatedAt)
	assert.NotEqual(t, "2", reply.ID)

	// 其他评论保持不变
	assert.Empty(t, thread.Comments[1].Replies)
	assert.Equal(t, "Edge computing", thread.Comments[1].Content)
}

func TestSubmitComment_IntoEmptyStore(t *testing.T) {
	s := NewStore("9", seedComments(), WithClock(fixedClock))
	require.Equal(t, 0, s.Count())

	thread, ok := s.SubmitComment("Ann", "a@x.com", "Hi")
	require.True(t, ok)
	require.Len(t, thread.Comments, 1)

	c := thread.Comments[0]
	assert.Equal(t, "Ann", c.Author)
	assert.Equal(t, "a@x.com", c.Email)
	assert.Equal(t, "Hi", c.Content)
	assert.Equal(t, "9", c.PostID)
	assert.Nil(t, c.ParentID)
	assert.NotNil(t, c.Replies)
	assert.Empty(t, c.Replies)
	assert.NotEmpty(t, c.ID)
	assert.Equal(t, fixedNow, c.CreatedAt)
}

func TestSubmitComment_KeepsRawInput(t *testing.T) {
	s := NewStore("1", nil)

	thread, ok := s.SubmitComment("  Ann ", "a@x.com", " Hi\n")
	require.True(t, ok)
	assert.Equal(t, "  Ann ", thread.Comments[0].Author)
	assert.Equal(t, " Hi\n", thread.Comments[0].Content)
}

func TestSubmitComment_RejectsBlankFields(t *testing.T) {
	tests := []struct {
		name                   string
		author, email, content string
	}{
		{"作者为空", "", "a@x.com", "Hi"},
		{"作者全是空白", "   ", "a@x.com", "Hi"},
		{"作者只有字节序标记", "\uFEFF", "a@x.com", "Hi"},
		{"邮箱为空", "Ann", "", "Hi"},
		{"邮箱全是空白", "Ann", " \t", "Hi"},
		{"邮箱只有不换行空格", "Ann", "\u00a0", "Hi"},
		{"内容为空", "Ann", "a@x.com", ""},
		{"内容全是空白", "Ann", "a@x.com", "\n\t "},
		{"内容只有全角空格和行分隔符", "Ann", "a@x.com", "\u3000\u2028"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewStore("1", seedComments())
			before := s.Snapshot()

			thread, ok := s.SubmitComment(tt.author, tt.email, tt.content)
			assert.False(t, ok)
			assert.Equal(t, before, thread)
			assert.Equal(t, uint64(0), s.Sequence())
		})
	}
}

func TestIsBlank(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want bool
	}{
		{"空字符串", "", true},
		{"普通空白", " \t\r\n\v\f", true},
		{"字节序标记", "\uFEFF \uFEFF", true},
		{"不换行空格", "\u00a0", true},
		{"段落分隔符", "\u2029", true},
		{"NEL 不算空白", "\u0085", false},
		{"两侧空白包着文字", "\uFEFF Hi \u00a0", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isBlank(tt.in))
		})
	}
}

func TestSubmitComment_NotIdempotent(t *testing.T) {
	s := NewStore("1", nil)

	first, ok := s.SubmitComment("Ann", "a@x.com", "Hi")
	require.True(t, ok)
	second, ok := s.SubmitComment("Ann", "a@x.com", "Hi")
	require.True(t, ok)

	require.Len(t, second.Comments, 2)
	assert.NotEqual(t, second.Comments[0].ID, second.Comments[1].ID)
	assert.Len(t, first.Comments, 1)
}

func TestSubmitReply_Rejects(t *testing.T) {
	tests := []struct {
		name     string
		parentID string
		content  string
	}{
		{"父评论不存在", "missing", "Nice"},
		{"不能回复回复", "2", "Nice"},
		{"内容为空白", "1", "  "},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewStore("1", seedComments())
			before := s.Snapshot()

			thread, ok := s.SubmitReply(tt.parentID, tt.content)
			assert.False(t, ok)
			assert.Equal(t, before, thread)
		})
	}
}

func TestSnapshot_IsIndependent(t *testing.T) {
	s := NewStore("1", seedComments())

	snap := s.Snapshot()
	snap.Comments[0].Content = "mutated"
	snap.Comments[0].Replies = nil

	again := s.Snapshot()
	assert.Equal(t, "Great insights!", again.Comments[0].Content)
	assert.Len(t, again.Comments[0].Replies, 1)
}

func TestStore_ResumeSequence(t *testing.T) {
	s := NewStore("1", nil)
	thread, ok := s.SubmitComment("Ann", "a@x.com", "Hi")
	require.True(t, ok)

	resumed := NewStore("1", thread.Comments, WithSequence(s.Sequence()))
	next, ok := resumed.SubmitComment("Bob", "b@x.com", "Hey")
	require.True(t, ok)

	require.Len(t, next.Comments, 2)
	assert.NotEqual(t, next.Comments[0].ID, next.Comments[1].ID)
	assert.Greater(t, resumed.Sequence(), s.Sequence())
}

func TestSubmitComment_RendersMarkdown(t *testing.T) {
	s := NewStore("1", nil)
	thread, ok := s.SubmitComment("Ann", "a@x.com", "**bold** <script>alert(1)</script>")
	require.True(t, ok)

	html := thread.Comments[0].ContentHTML
	assert.Contains(t, html, "<strong>bold</strong>")
	assert.NotContains(t, html, "<script>")
}

func TestFind(t *testing.T) {
	s := NewStore("1", seedComments())

	tests := []struct {
		name      string
		id        string
		found     bool
		wantReply bool
	}{
		{"顶级评论", "1", true, false},
		{"回复", "2", true, true},
		{"其他文章的评论", "4", false, false},
		{"不存在", "404", false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, ok := s.Find(tt.id)
			require.Equal(t, tt.found, ok)
			if !ok {
				assert.Nil(t, c)
				return
			}
			assert.Equal(t, tt.id, c.ID)
			assert.Equal(t, tt.wantReply, c.IsReply())
		})
	}

	// 返回的是拷贝
	c, _ := s.Find("1")
	c.Content = "mutated"
	again, _ := s.Find("1")
	assert.Equal(t, "Great insights!", again.Content)
}
