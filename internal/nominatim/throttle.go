package nominatim

import (
	"sync"
	"time"

	"relief-api/internal/metrics"
)

// MinInterval 为两次外呼之间的最小间隔（Nominatim 使用条款：每秒不超过一次）
const MinInterval = 1000 * time.Millisecond

// 文档注释：进程级外呼节流器
// 背景：所有调用方共享同一时间戳，"计算等待 → 睡眠 → 盖戳"在同一临界区内完成，调用方串行排队，不会因竞态同时外呼。
// 约束：只延迟不丢弃；网络请求在临界区之外发出；生命周期与进程一致，无持久化。
type Throttle struct {
	mu       sync.Mutex
	last     time.Time
	interval time.Duration
	now      func() time.Time
	sleep    func(time.Duration)
}

var shared = NewThrottle(MinInterval)

// Shared 返回进程级单例，供默认客户端使用
func Shared() *Throttle { return shared }

func NewThrottle(interval time.Duration) *Throttle {
	if interval <= 0 {
		interval = MinInterval
	}
	return &Throttle{interval: interval, now: time.Now, sleep: time.Sleep}
}

// Wait：距上次盖戳不足 interval 时阻塞剩余时长，随后盖戳；返回实际等待时长
func (t *Throttle) Wait() time.Duration {
	waited, _ := t.wait()
	return waited
}

func (t *Throttle) wait() (time.Duration, time.Time) {
	t.mu.Lock()
	defer t.mu.Unlock()
	var waited time.Duration
	if !t.last.IsZero() {
		if elapsed := t.now().Sub(t.last); elapsed < t.interval {
			waited = t.interval - elapsed
			t.sleep(waited)
		}
	}
	t.last = t.now()
	metrics.ThrottleWaitMs.Observe(float64(waited.Milliseconds()))
	return waited, t.last
}

func (t *Throttle) Interval() time.Duration { return t.interval }
