package services

import (
	"context"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/mem"
	"github.com/shirou/gopsutil/v3/process"

	"mentorhub-backend-go/internal/models"
	"mentorhub-backend-go/internal/store"
)

// MetricSample is the JSON shape exposed on the metrics history endpoint.
type MetricSample struct {
	CapturedAt        time.Time `json:"capturedAt"`
	HeapUsedBytes     int64     `json:"heapUsedBytes"`
	HeapMaxBytes      int64     `json:"heapMaxBytes"`
	SystemMemoryTotal int64     `json:"systemMemoryTotalBytes"`
	SystemMemoryUsed  int64     `json:"systemMemoryUsedBytes"`
	DiskTotalBytes    int64     `json:"diskTotalBytes"`
	DiskUsedBytes     int64     `json:"diskUsedBytes"`
	ProcessCpuLoad    float64   `json:"processCpuLoad"`
	SystemCpuLoad     float64   `json:"systemCpuLoad"`
}

func CaptureMetrics(ctx context.Context, metrics store.MetricStore) (MetricSample, error) {
	proc, _ := process.NewProcess(int32(os.Getpid()))
	memStat, _ := mem.VirtualMemory()
	diskStat, err := disk.Usage("/")
	if err != nil {
		diskStat = &disk.UsageStat{}
	}
	processRSS := int64(0)
	processCPU := float64(0)
	if proc != nil {
		rss, _ := proc.MemoryInfo()
		if rss != nil {
			processRSS = int64(rss.RSS)
		}
		cpuPerc, _ := proc.CPUPercent()
		processCPU = cpuPerc / 100.0
	}
	sysCPU, _ := cpu.Percent(0, false)
	sysCPUValue := 0.0
	if len(sysCPU) > 0 {
		sysCPUValue = sysCPU[0] / 100.0
	}
	sample := MetricSample{
		CapturedAt:        time.Now().UTC(),
		HeapUsedBytes:     processRSS,
		HeapMaxBytes:      int64(memStat.Total),
		SystemMemoryTotal: int64(memStat.Total),
		SystemMemoryUsed:  int64(memStat.Total - memStat.Available),
		DiskTotalBytes:    int64(diskStat.Total),
		DiskUsedBytes:     int64(diskStat.Used),
		ProcessCpuLoad:    processCPU,
		SystemCpuLoad:     sysCPUValue,
	}
	row := &models.ServerMetricSample{
		ID:                uuid.NewString(),
		CapturedAt:        sample.CapturedAt,
		HeapUsedBytes:     sample.HeapUsedBytes,
		HeapMaxBytes:      sample.HeapMaxBytes,
		SystemMemoryTotal: sample.SystemMemoryTotal,
		SystemMemoryUsed:  sample.SystemMemoryUsed,
		DiskTotalBytes:    sample.DiskTotalBytes,
		DiskUsedBytes:     sample.DiskUsedBytes,
		ProcessCpuLoad:    sample.ProcessCpuLoad,
		SystemCpuLoad:     sample.SystemCpuLoad,
	}
	if err := metrics.InsertMetricSample(ctx, row); err != nil {
		return MetricSample{}, err
	}
	return sample, nil
}

func LatestMetrics(ctx context.Context, metrics store.MetricStore, limit int) ([]MetricSample, error) {
	rows, err := metrics.ListMetricSamples(ctx, limit)
	if err != nil {
		return nil, err
	}
	items := make([]MetricSample, 0, len(rows))
	for _, row := range rows {
		items = append(items, MetricSample{
			CapturedAt:        row.CapturedAt,
			HeapUsedBytes:     row.HeapUsedBytes,
			HeapMaxBytes:      row.HeapMaxBytes,
			SystemMemoryTotal: row.SystemMemoryTotal,
			SystemMemoryUsed:  row.SystemMemoryUsed,
			DiskTotalBytes:    row.DiskTotalBytes,
			DiskUsedBytes:     row.DiskUsedBytes,
			ProcessCpuLoad:    row.ProcessCpuLoad,
			SystemCpuLoad:     row.SystemCpuLoad,
		})
	}
	return items, nil
}
