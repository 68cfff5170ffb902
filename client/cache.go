package client

import (
	"sync"

	"golang.org/x/sync/singleflight"
)

// Tag đánh dấu dữ liệu một cache entry cung cấp. Mutation khai báo
// tag cần invalidate; entry dính tag đó bị xoá và lần đọc sau refetch.
type Tag struct {
	Type string // MCQ | TF | FB | User
	ID   string // "LIST" hoặc id cụ thể
}

type cacheEntry struct {
	value interface{}
	tags  []Tag
}

// tagCache: cache key → entry, an toàn cho dùng đồng thời.
// Request trùng key đang bay được gộp qua singleflight. gen tăng mỗi lần
// invalidate; fetch bắt đầu trước đó không được lưu kết quả, nên lần đọc
// sau một invalidation luôn thấy dữ liệu mới.
type tagCache struct {
	mu       sync.RWMutex
	entries  map[string]cacheEntry
	gen      uint64
	inflight map[string]int
	flight   singleflight.Group
}

func newTagCache() *tagCache {
	return &tagCache{
		entries:  make(map[string]cacheEntry),
		inflight: make(map[string]int),
	}
}

// GetOrFetch trả về giá trị cache nếu còn, ngược lại gọi fetch đúng một lần
// cho mọi caller đồng thời cùng key rồi lưu kết quả kèm tags.
func (tc *tagCache) GetOrFetch(key string, fetch func() (interface{}, []Tag, error)) (interface{}, error) {
	tc.mu.RLock()
	if e, ok := tc.entries[key]; ok {
		tc.mu.RUnlock()
		return e.value, nil
	}
	tc.mu.RUnlock()

	v, err, _ := tc.flight.Do(key, func() (interface{}, error) {
		// caller thứ hai có thể vào đây sau khi caller đầu đã lưu xong
		tc.mu.Lock()
		if e, ok := tc.entries[key]; ok {
			tc.mu.Unlock()
			return e.value, nil
		}
		start := tc.gen
		tc.inflight[key]++
		tc.mu.Unlock()

		value, tags, err := fetch()

		tc.mu.Lock()
		if tc.inflight[key]--; tc.inflight[key] == 0 {
			delete(tc.inflight, key)
		}
		if err == nil && tc.gen == start {
			tc.entries[key] = cacheEntry{value: value, tags: tags}
		}
		tc.mu.Unlock()
		if err != nil {
			return nil, err
		}
		return value, nil
	})
	return v, err
}

// Invalidate xoá mọi entry cung cấp ít nhất một tag trong danh sách.
// Fetch đang bay bị Forget để caller đến sau mở fetch mới thay vì
// nhận kết quả cũ.
func (tc *tagCache) Invalidate(tags ...Tag) {
	tc.mu.Lock()
	defer tc.mu.Unlock()
	tc.gen++
	for key, e := range tc.entries {
		if tagsIntersect(e.tags, tags) {
			delete(tc.entries, key)
		}
	}
	for key := range tc.inflight {
		tc.flight.Forget(key)
	}
}

func (tc *tagCache) Clear() {
	tc.mu.Lock()
	defer tc.mu.Unlock()
	tc.gen++
	tc.entries = make(map[string]cacheEntry)
	for key := range tc.inflight {
		tc.flight.Forget(key)
	}
}

func tagsIntersect(a, b []Tag) bool {
	for _, x := range a {
		for _, y := range b {
			if x == y {
				return true
			}
		}
	}
	return false
}
