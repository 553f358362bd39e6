package store

import (
	"context"

	"mentorhub-backend-go/internal/models"
)

func (p *Postgres) InsertMetricSample(ctx context.Context, s *models.ServerMetricSample) error {
	_, err := p.db.ExecContext(ctx, `
INSERT INTO server_metric_samples (
  id, captured_at, heap_used_bytes, heap_max_bytes, system_memory_total_bytes,
  system_memory_used_bytes, disk_total_bytes, disk_used_bytes, process_cpu_load, system_cpu_load
) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
`, s.ID, s.CapturedAt, s.HeapUsedBytes, s.HeapMaxBytes, s.SystemMemoryTotal,
		s.SystemMemoryUsed, s.DiskTotalBytes, s.DiskUsedBytes, s.ProcessCpuLoad, s.SystemCpuLoad)
	return translate(err)
}

func (p *Postgres) ListMetricSamples(ctx context.Context, limit int) ([]models.ServerMetricSample, error) {
	rows := []models.ServerMetricSample{}
	err := p.db.SelectContext(ctx, &rows, `
SELECT id, captured_at, heap_used_bytes, heap_max_bytes, system_memory_total_bytes,
       system_memory_used_bytes, disk_total_bytes, disk_used_bytes, process_cpu_load, system_cpu_load
FROM server_metric_samples
ORDER BY captured_at DESC
LIMIT $1
`, limit)
	if err != nil {
		return nil, translate(err)
	}
	// Oldest first for charting.
	for i, j := 0, len(rows)-1; i < j; i, j = i+1, j-1 {
		rows[i], rows[j] = rows[j], rows[i]
	}
	return rows, nil
}
