package health

import (
	"context"
	"runtime"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/mem"
)

type HealthChecker struct {
	db      *pgxpool.Pool
	started time.Time
}

type HealthStatus struct {
	Status   string         `json:"status"`
	Database DatabaseHealth `json:"database"`
}

type DatabaseHealth struct {
	Status       string `json:"status"`
	ResponseTime int64  `json:"response_time_ms"`
}

type DetailedStatus struct {
	HealthStatus
	UptimeSeconds int64       `json:"uptime_seconds"`
	Goroutines    int         `json:"goroutines"`
	System        SystemStats `json:"system"`
	Pool          PoolStats   `json:"pool"`
}

type SystemStats struct {
	CPUPercent      float64 `json:"cpu_percent"`
	MemUsedPercent  float64 `json:"mem_used_percent"`
	MemTotalMB      uint64  `json:"mem_total_mb"`
	DiskUsedPercent float64 `json:"disk_used_percent"`
}

type PoolStats struct {
	TotalConns    int32 `json:"total_conns"`
	IdleConns     int32 `json:"idle_conns"`
	AcquiredConns int32 `json:"acquired_conns"`
}

func NewHealthChecker(db *pgxpool.Pool) *HealthChecker {
	return &HealthChecker{db: db, started: time.Now()}
}

func (h *HealthChecker) CheckBasic() HealthStatus {
	dbHealth := h.checkDatabase()

	status := "healthy"
	if dbHealth.Status != "healthy" {
		status = "unhealthy"
	}

	return HealthStatus{
		Status:   status,
		Database: dbHealth,
	}
}

// CheckDetailed adds host and connection pool statistics to the basic
// check. Stat collection errors leave the affected fields zeroed.
func (h *HealthChecker) CheckDetailed() DetailedStatus {
	detailed := DetailedStatus{
		HealthStatus:  h.CheckBasic(),
		UptimeSeconds: int64(time.Since(h.started).Seconds()),
		Goroutines:    runtime.NumGoroutine(),
	}

	if cpuPercents, _ := cpu.Percent(100*time.Millisecond, false); len(cpuPercents) > 0 {
		detailed.System.CPUPercent = cpuPercents[0]
	}
	if memStats, _ := mem.VirtualMemory(); memStats != nil {
		detailed.System.MemUsedPercent = memStats.UsedPercent
		detailed.System.MemTotalMB = memStats.Total / 1024 / 1024
	}
	if diskStats, _ := disk.Usage("/"); diskStats != nil {
		detailed.System.DiskUsedPercent = diskStats.UsedPercent
	}

	stat := h.db.Stat()
	detailed.Pool = PoolStats{
		TotalConns:    stat.TotalConns(),
		IdleConns:     stat.IdleConns(),
		AcquiredConns: stat.AcquiredConns(),
	}
	return detailed
}

func (h *HealthChecker) checkDatabase() DatabaseHealth {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	start := time.Now()
	err := h.db.Ping(ctx)
	responseTime := time.Since(start).Milliseconds()

	if err != nil {
		return DatabaseHealth{
			Status:       "unhealthy",
			ResponseTime: responseTime,
		}
	}

	return DatabaseHealth{
		Status:       "healthy",
		ResponseTime: responseTime,
	}
}
