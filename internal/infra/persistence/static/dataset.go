/*
 * @Description: 静态内容数据集的解码与校验
 * @Author: 安知鱼
 * @Date: 2026-09-23 10:12:40
 * @LastEditTime: 2026-10-13 16:05:18
 * @LastEditors: 安知鱼
 */
package static

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/anzhiyu-c/blogcms/pkg/domain/model"
)

//go:embed data/blog.yaml
var defaultDataset []byte

// DefaultDatasetName 导出内置数据集时使用的文件名
const DefaultDatasetName = "blog.yaml"

// DefaultDataset 返回内置数据集的原始 YAML
func DefaultDataset() []byte {
	return append([]byte(nil), defaultDataset...)
}

// Dataset 是内容数据集的完整结构，对应 YAML 文件的根节点
type Dataset struct {
	Categories []model.Category `yaml:"categories"`
	Posts      []*model.Article `yaml:"posts"`
	Comments   []*model.Comment `yaml:"comments"`

	postIndex map[string]*model.Article
}

// Decode 解析并校验 YAML 数据集，未知字段视为错误
func Decode(data []byte) (*Dataset, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var ds Dataset
	if err := dec.Decode(&ds); err != nil {
		return nil, fmt.Errorf("解析内容数据集失败: %w", err)
	}
	if err := ds.normalize(); err != nil {
		return nil, err
	}
	return &ds, nil
}

// normalize 校验 ID 唯一性，并把回复与所属顶级评论对齐
func (d *Dataset) normalize() error {
	var errs []error

	d.postIndex = make(map[string]*model.Article, len(d.Posts))
	for i, p := range d.Posts {
		if p == nil || strings.TrimSpace(p.ID) == "" {
			errs = append(errs, fmt.Errorf("第 %d 篇文章缺少 id", i+1))
			continue
		}
		if _, dup := d.postIndex[p.ID]; dup {
			errs = append(errs, fmt.Errorf("文章 id '%s' 重复", p.ID))
			continue
		}
		d.postIndex[p.ID] = p
	}

	seen := make(map[string]struct{})
	claim := func(id string) {
		if strings.TrimSpace(id) == "" {
			errs = append(errs, errors.New("存在缺少 id 的评论"))
			return
		}
		if _, dup := seen[id]; dup {
			errs = append(errs, fmt.Errorf("评论 id '%s' 重复", id))
			return
		}
		seen[id] = struct{}{}
	}

	kept := d.Comments[:0]
	for _, c := range d.Comments {
		if c == nil {
			continue
		}
		claim(c.ID)
		// 顶级评论不能带 parent_id
		c.ParentID = nil
		for _, r := range c.Replies {
			claim(r.ID)
			if len(r.Replies) > 0 {
				errs = append(errs, fmt.Errorf("回复 '%s' 不能再包含回复", r.ID))
			}
			if r.PostID == "" {
				r.PostID = c.PostID
			}
			pid := c.ID
			r.ParentID = &pid
			r.Replies = nil
		}
		kept = append(kept, c)
	}
	d.Comments = kept

	return errors.Join(errs...)
}

// Post 按 ID 查找文章，返回内部指针，调用方不得修改
func (d *Dataset) Post(id string) (*model.Article, bool) {
	p, ok := d.postIndex[id]
	return p, ok
}
