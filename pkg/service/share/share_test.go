package share

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestArticleURL(t *testing.T) {
	tests := []struct {
		name string
		site string
		id   string
		want string
	}{
		{"普通地址", "https://blogcms.example.com", "1", "https://blogcms.example.com/blog/1"},
		{"去掉结尾斜杠", "https://blogcms.example.com/", "2", "https://blogcms.example.com/blog/2"},
		{"ID需要转义", "https://a.test", "a b", "https://a.test/blog/a%20b"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ArticleURL(tt.site, tt.id))
		})
	}
}

func TestBuildLinks(t *testing.T) {
	links := BuildLinks("https://a.test/blog/1", "Less & More")

	assert.Equal(t, "https://a.test/blog/1", links.URL)
	assert.Equal(t, "https://twitter.com/intent/tweet?url=https%3A%2F%2Fa.test%2Fblog%2F1&text=Less+%26+More", links.Twitter)
	assert.Equal(t, "https://www.facebook.com/sharer/sharer.php?u=https%3A%2F%2Fa.test%2Fblog%2F1", links.Facebook)
	assert.Equal(t, "https://www.linkedin.com/sharing/share-offsite/?url=https%3A%2F%2Fa.test%2Fblog%2F1", links.LinkedIn)
}
