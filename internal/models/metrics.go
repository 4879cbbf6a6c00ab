package models

import "time"

// MetricsSnapshot is a JSON friendly summary of the service counters.
type MetricsSnapshot struct {
	RequestsTotal            uint64    `json:"requests_total"`
	AverageRequestDurationMs float64   `json:"average_request_duration_ms"`
	CacheHits                uint64    `json:"cache_hits"`
	CacheMisses              uint64    `json:"cache_misses"`
	CacheHitRatio            float64   `json:"cache_hit_ratio"`
	ScheduleConflicts        uint64    `json:"schedule_conflicts"`
	SponsorReorders          uint64    `json:"sponsor_reorders"`
	SponsorReorderReverts    uint64    `json:"sponsor_reorder_reverts"`
	Goroutines               int       `json:"goroutines"`
	GeneratedAt              time.Time `json:"generated_at"`
}
