package service

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/bitfantasy/weldshop/internal/repository"
	"github.com/redis/go-redis/v9"
)

// 统计计数缓存键与TTL
const (
	dashboardActiveJobsKey = "dashboard:active_jobs"
	dashboardLowStockKey   = "dashboard:low_stock"
	dashboardCacheTTL      = 30 * time.Second
)

// DashboardService 仪表盘服务
type DashboardService struct {
	projects  *repository.ProjectRepository
	inventory *InventoryService
	customers *repository.CustomerRepository
	rdb       *redis.Client
}

// NewDashboardService 创建仪表盘服务。低库存计数走库存服务，
// 快照就位时不落库。
func NewDashboardService(projects *repository.ProjectRepository, inventory *InventoryService, customers *repository.CustomerRepository, rdb *redis.Client) *DashboardService {
	return &DashboardService{
		projects:  projects,
		inventory: inventory,
		customers: customers,
		rdb:       rdb,
	}
}

// DashboardStats 仪表盘统计
type DashboardStats struct {
	ActiveJobs int64 `json:"active_jobs"`
	LowStock   int64 `json:"low_stock"`
}

// Stats 统计计数，redis 可用时按短TTL缓存
func (s *DashboardService) Stats(ctx context.Context) (*DashboardStats, error) {
	activeJobs, err := s.cachedCount(ctx, dashboardActiveJobsKey, func() (int64, error) {
		return s.projects.CountActive(ctx)
	})
	if err != nil {
		return nil, err
	}

	lowStock, err := s.cachedCount(ctx, dashboardLowStockKey, func() (int64, error) {
		return s.inventory.CountLowStock(ctx)
	})
	if err != nil {
		return nil, err
	}

	return &DashboardStats{ActiveJobs: activeJobs, LowStock: lowStock}, nil
}

// cachedCount 先查redis，未命中或redis不可用则落库并回填
func (s *DashboardService) cachedCount(ctx context.Context, key string, load func() (int64, error)) (int64, error) {
	if s.rdb != nil {
		if val, err := s.rdb.Get(ctx, key).Result(); err == nil {
			if count, err := strconv.ParseInt(val, 10, 64); err == nil {
				return count, nil
			}
		}
	}

	count, err := load()
	if err != nil {
		return 0, err
	}
	if s.rdb != nil {
		s.rdb.Set(ctx, key, strconv.FormatInt(count, 10), dashboardCacheTTL)
	}
	return count, nil
}

// ConnectivityStatus 数据库连通性探测结果
type ConnectivityStatus struct {
	Connected bool   `json:"connected"`
	Detail    string `json:"detail,omitempty"`
}

// Probe 数据库连通性探测。表缺失或权限不足说明连接本身是通的，
// 只有网络/认证层面的失败才算断连。
func (s *DashboardService) Probe(ctx context.Context) *ConnectivityStatus {
	err := s.customers.Probe(ctx)
	if err == nil {
		return &ConnectivityStatus{Connected: true}
	}

	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "does not exist") ||
		strings.Contains(msg, "no such table") ||
		strings.Contains(msg, "permission denied") {
		return &ConnectivityStatus{Connected: true, Detail: err.Error()}
	}
	return &ConnectivityStatus{Connected: false, Detail: err.Error()}
}
