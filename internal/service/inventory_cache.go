package service

import (
	"sync"

	"github.com/bitfantasy/weldshop/internal/entity"
)

// inventoryCache 按 id 维护库存快照，行级变更直接套用，避免每次变更整表重查
type inventoryCache struct {
	mu     sync.RWMutex
	items  map[string]entity.InventoryItem
	primed bool
}

func newInventoryCache() *inventoryCache {
	return &inventoryCache{
		items: make(map[string]entity.InventoryItem),
	}
}

// Prime 用整表查询结果初始化快照
func (c *inventoryCache) Prime(items []entity.InventoryItem) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = make(map[string]entity.InventoryItem, len(items))
	for _, item := range items {
		c.items[item.ID] = item
	}
	c.primed = true
}

// Apply 套用一行新增/更新
func (c *inventoryCache) Apply(item entity.InventoryItem) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.primed {
		return
	}
	c.items[item.ID] = item
}

// Remove 套用一行删除
func (c *inventoryCache) Remove(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.primed {
		return
	}
	delete(c.items, id)
}

// Primed 快照是否已初始化
func (c *inventoryCache) Primed() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.primed
}

// LowStockCount 快照中低库存（含缺货）物料数
func (c *inventoryCache) LowStockCount() int64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	var count int64
	for _, item := range c.items {
		if item.IsLowStock() {
			count++
		}
	}
	return count
}
