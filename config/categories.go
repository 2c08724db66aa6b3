package config

import "strings"

// Categories 是启动时确定的有序分类集合，创建后不可修改
type Categories struct {
	names []string
}

// NewCategories 创建分类集合，去掉空白项和重复项，保持首次出现的顺序
func NewCategories(names ...string) Categories {
	seen := make(map[string]struct{}, len(names))
	out := make([]string, 0, len(names))
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" {
			continue
		}
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	return Categories{names: out}
}

// All 返回分类名称的副本
func (c Categories) All() []string {
	return append([]string(nil), c.names...)
}

// Len 返回分类数量
func (c Categories) Len() int { return len(c.names) }

// First 返回第一个分类，集合为空时返回 false
func (c Categories) First() (string, bool) {
	if len(c.names) == 0 {
		return "", false
	}
	return c.names[0], true
}

// Contains 判断 name 是否属于集合
func (c Categories) Contains(name string) bool {
	for _, n := range c.names {
		if n == name {
			return true
		}
	}
	return false
}
