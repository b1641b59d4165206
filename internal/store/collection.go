package store

import (
	"sort"
	"sync"
)

// Collection 泛型实体集合：按ID归一化存储，有序视图由比较器纯函数导出。
// 同一集合内ID唯一；UpsertOne 幂等，整体覆盖（最后写入者胜）。
type Collection[T any] struct {
	mu       sync.RWMutex
	items    map[string]T
	selectID func(T) string
	less     func(a, b T) bool
}

// NewCollection 创建实体集合，selectID 提取主键，less 决定有序视图
func NewCollection[T any](selectID func(T) string, less func(a, b T) bool) *Collection[T] {
	return &Collection[T]{
		items:    make(map[string]T),
		selectID: selectID,
		less:     less,
	}
}

// UpsertOne 按ID写入或整体覆盖一个实体
func (c *Collection[T]) UpsertOne(item T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[c.selectID(item)] = item
}

// UpsertMany 批量写入，不影响未出现的已有实体
func (c *Collection[T]) UpsertMany(items []T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, item := range items {
		c.items[c.selectID(item)] = item
	}
}

// SetAll 用给定集合整体替换，未出现的旧实体全部丢弃
func (c *Collection[T]) SetAll(items []T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = make(map[string]T, len(items))
	for _, item := range items {
		c.items[c.selectID(item)] = item
	}
}

// RemoveOne 按ID删除，删除不存在的ID是安全的
func (c *Collection[T]) RemoveOne(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.items[id]; !ok {
		return false
	}
	delete(c.items, id)
	return true
}

// RemoveAll 清空集合
func (c *Collection[T]) RemoveAll() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = make(map[string]T)
}

// SelectAll 返回按比较器排序的实体副本切片
func (c *Collection[T]) SelectAll() []T {
	c.mu.RLock()
	result := make([]T, 0, len(c.items))
	for _, item := range c.items {
		result = append(result, item)
	}
	c.mu.RUnlock()

	sort.Slice(result, func(i, j int) bool {
		return c.less(result[i], result[j])
	})
	return result
}

// SelectByID 按ID查找
func (c *Collection[T]) SelectByID(id string) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	item, ok := c.items[id]
	return item, ok
}

// Has 判断ID是否存在
func (c *Collection[T]) Has(id string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.items[id]
	return ok
}

// Len 返回集合大小
func (c *Collection[T]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}
