package geocode

import (
	"container/list"
	"sync"
	"time"

	"relief-api/internal/geo"
	"relief-api/internal/postal"
)

const (
	DefaultCacheSize = 1000
	DefaultCacheTTL  = 24 * time.Hour
)

// 文档注释：进程内地理编码缓存（按插入顺序淘汰 + TTL）
// 背景：外部服务限速且有使用条款，成功结果在进程内保留 24h，重复查询不再外呼。
// 约束：
// - 读取不刷新位置（非 LRU）；容量满时淘汰最早插入的条目；覆盖写不改变原插入位置；
// - 过期条目惰性处理：Get 视为未命中，但不主动清除，仍占用容量直至被淘汰；
// - 单把互斥锁保护全部状态，可被并发请求共享；进程重启即丢失，无持久化。
type Cache struct {
	mu   sync.Mutex
	cap  int
	ttl  time.Duration
	now  func() time.Time
	lst  *list.List
	dict map[postal.Key]*list.Element
}

type cacheEntry struct {
	key       postal.Key
	coord     geo.Coordinate
	fetchedAt time.Time
}

type CacheOption func(*Cache)

// WithClock 注入时钟，测试用
func WithClock(now func() time.Time) CacheOption {
	return func(c *Cache) { c.now = now }
}

func NewCache(capacity int, ttl time.Duration, opts ...CacheOption) *Cache {
	if capacity <= 0 {
		capacity = DefaultCacheSize
	}
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	c := &Cache{cap: capacity, ttl: ttl, now: time.Now, lst: list.New(), dict: make(map[postal.Key]*list.Element)}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Get：存在且 now-fetchedAt <= TTL 时返回
func (c *Cache) Get(key postal.Key) (geo.Coordinate, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.dict[key]
	if !ok {
		return geo.Coordinate{}, false
	}
	it := e.Value.(*cacheEntry)
	if c.now().Sub(it.fetchedAt) > c.ttl {
		return geo.Coordinate{}, false
	}
	return it.coord, true
}

// Put：插入或覆盖，fetchedAt 取当前时间；超出容量时淘汰最早插入的条目
func (c *Cache) Put(key postal.Key, coord geo.Coordinate) {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.now()
	if e, ok := c.dict[key]; ok {
		it := e.Value.(*cacheEntry)
		it.coord = coord
		it.fetchedAt = now
		return
	}
	c.dict[key] = c.lst.PushBack(&cacheEntry{key: key, coord: coord, fetchedAt: now})
	for c.lst.Len() > c.cap {
		front := c.lst.Front()
		it := front.Value.(*cacheEntry)
		delete(c.dict, it.key)
		c.lst.Remove(front)
	}
}

// Len 返回当前持有的条目数（含已过期未淘汰的）
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lst.Len()
}
