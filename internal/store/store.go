package store

import (
	"sync"
	"time"

	"billdiff/internal/model"
)

// Dataset 一次上传对应的数据集
// 同一会话重新上传即整体替换；记录集本身不再修改
type Dataset struct {
	ID         string
	FileName   string
	Records    []model.BillingRecord
	Months     []string
	Unmonthed  int
	UploadedAt time.Time
}

type datasetEntry struct {
	dataset   Dataset
	expiresAt time.Time
}

// Store 内存数据集存储
// 数据只存在于进程内，闲置超过 TTL 的数据集在下一次访问时被清理
type Store struct {
	mu       sync.Mutex
	datasets map[string]*datasetEntry
	ttl      time.Duration
}

// New 创建数据集存储
func New(ttl time.Duration) *Store {
	return &Store{
		datasets: make(map[string]*datasetEntry),
		ttl:      ttl,
	}
}

// Put 存入数据集；同 ID 的旧数据集被整体替换
func (s *Store) Put(d Dataset) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.purgeExpiredLocked(time.Now())
	s.datasets[d.ID] = &datasetEntry{
		dataset:   d,
		expiresAt: time.Now().Add(s.ttl),
	}
}

// Get 取出数据集，命中则顺延过期时间
func (s *Store) Get(id string) (Dataset, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.purgeExpiredLocked(time.Now())

	entry, ok := s.datasets[id]
	if !ok {
		return Dataset{}, false
	}
	entry.expiresAt = time.Now().Add(s.ttl)
	return entry.dataset, true
}

// Delete 删除数据集
func (s *Store) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.datasets, id)
}

// Count 当前存活的数据集数量
func (s *Store) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.purgeExpiredLocked(time.Now())
	return len(s.datasets)
}

func (s *Store) purgeExpiredLocked(now time.Time) {
	for id, entry := range s.datasets {
		if now.After(entry.expiresAt) {
			delete(s.datasets, id)
		}
	}
}
