package service

import (
	"runtime"
	"time"

	"blogd/database"
	"blogd/database/model"
	"blogd/logger"
	"blogd/web/policy"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/host"
	"github.com/shirou/gopsutil/v4/load"
	"github.com/shirou/gopsutil/v4/mem"
	"gorm.io/gorm"
)

// Stats is the admin dashboard snapshot: content counts plus a host status
// section.
type Stats struct {
	T     time.Time `json:"-"`
	Users struct {
		Total   int64 `json:"total"`
		Admins  int64 `json:"admins"`
		Authors int64 `json:"authors"`
		Readers int64 `json:"readers"`
	} `json:"users"`
	Posts    int64 `json:"posts"`
	Comments int64 `json:"comments"`
	Host     struct {
		Uptime   uint64    `json:"uptime"`
		CpuCores int       `json:"cpuCores"`
		Loads    []float64 `json:"loads"`
		Mem      struct {
			Current uint64 `json:"current"`
			Total   uint64 `json:"total"`
		} `json:"mem"`
	} `json:"host"`
}

// StatsService assembles the admin stats snapshot.
type StatsService struct {
	DB *gorm.DB
}

func NewStatsService() *StatsService {
	return &StatsService{DB: database.GetDB()}
}

func (s *StatsService) countByRole(role policy.Role) (int64, error) {
	var count int64
	err := s.DB.Model(&model.User{}).Where("role = ?", string(role)).Count(&count).Error
	return count, err
}

// GetStats collects content counts from the store and host figures via
// gopsutil. Host probes that fail are logged and left zeroed rather than
// failing the whole snapshot.
func (s *StatsService) GetStats() (*Stats, error) {
	stats := &Stats{T: time.Now()}

	if err := s.DB.Model(&model.User{}).Count(&stats.Users.Total).Error; err != nil {
		return nil, err
	}
	var err error
	if stats.Users.Admins, err = s.countByRole(policy.RoleAdmin); err != nil {
		return nil, err
	}
	if stats.Users.Authors, err = s.countByRole(policy.RoleAuthor); err != nil {
		return nil, err
	}
	if stats.Users.Readers, err = s.countByRole(policy.RoleReader); err != nil {
		return nil, err
	}
	if err = s.DB.Model(&model.Post{}).Count(&stats.Posts).Error; err != nil {
		return nil, err
	}
	if err = s.DB.Model(&model.Comment{}).Count(&stats.Comments).Error; err != nil {
		return nil, err
	}

	if uptime, err := host.Uptime(); err != nil {
		logger.Warning("get uptime failed:", err)
	} else {
		stats.Host.Uptime = uptime
	}
	if cores, err := cpu.Counts(true); err != nil {
		logger.Warning("get cpu count failed:", err)
		stats.Host.CpuCores = runtime.NumCPU()
	} else {
		stats.Host.CpuCores = cores
	}
	if avg, err := load.Avg(); err != nil {
		logger.Warning("get load avg failed:", err)
	} else {
		stats.Host.Loads = []float64{avg.Load1, avg.Load5, avg.Load15}
	}
	if memInfo, err := mem.VirtualMemory(); err != nil {
		logger.Warning("get virtual memory failed:", err)
	} else {
		stats.Host.Mem.Current = memInfo.Used
		stats.Host.Mem.Total = memInfo.Total
	}

	return stats, nil
}
