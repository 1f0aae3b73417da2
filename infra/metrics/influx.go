package metrics

import (
	"context"
	"net/http"
	"strings"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"
	"github.com/influxdata/influxdb-client-go/v2/api/write"

	coremetrics "github.com/readingcorps/rsmatch/core/metrics"
	"github.com/readingcorps/rsmatch/infra/logger"
)

// InfluxSink writes match events to an InfluxDB instance using the official
// client.
type InfluxSink struct {
	client   influxdb2.Client
	writeAPI api.WriteAPIBlocking
	log      logger.Logger
}

// NewInfluxSink creates a new sink configured for the given InfluxDB
// endpoint.
func NewInfluxSink(url, token, org, bucket string) *InfluxSink {
	base := strings.TrimSuffix(url, "/api/v2/write")
	client := influxdb2.NewClientWithOptions(base, token,
		influxdb2.DefaultOptions().SetHTTPClient(&http.Client{Timeout: 5 * time.Second}))
	return &InfluxSink{
		client:   client,
		writeAPI: client.WriteAPIBlocking(org, bucket),
		log:      logger.New("influx-sink"),
	}
}

// NewInfluxSinkWithFallback tries to ping the InfluxDB instance and returns
// a NopSink if the health check fails.
func NewInfluxSinkWithFallback(url, token, org, bucket string) coremetrics.MetricsSink {
	sink := NewInfluxSink(url, token, org, bucket)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	health, err := sink.client.Health(ctx)
	if err != nil || health.Status != "pass" {
		if err != nil {
			sink.log.Errorf("influx health check error: %v", err)
		} else {
			sink.log.Errorf("influx health status: %s", health.Status)
		}
		sink.client.Close()
		return coremetrics.NopSink{}
	}
	return sink
}

// RecordMatchResult writes one point per completed run.
func (s *InfluxSink) RecordMatchResult(res []coremetrics.MatchResult) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	for _, r := range res {
		p := write.NewPointWithMeasurement("match_run").
			AddTag("run_id", r.RunID).
			AddTag("school", r.School).
			AddField("assignments", r.Assignments).
			AddField("unassigned_students", r.UnassignedStudents).
			AddField("unassigned_teachers", r.UnassignedTeachers).
			AddField("slot_overlaps", r.SlotOverlaps).
			AddField("days_remaining", r.DaysRemaining).
			AddField("cycles_found", r.CyclesFound).
			AddField("culled", r.Culled).
			AddField("duration_seconds", r.Duration.Seconds()).
			SetTime(r.Time)
		if err := s.writeAPI.WritePoint(ctx, p); err != nil {
			return err
		}
	}
	return nil
}

// RecordSearchProgress writes one point per processed cycle.
func (s *InfluxSink) RecordSearchProgress(ev coremetrics.SearchProgress) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	p := write.NewPointWithMeasurement("search_progress").
		AddTag("run_id", ev.RunID).
		AddTag("school", ev.School).
		AddField("cycles_processed", ev.CyclesProcessed).
		AddField("cycles_total", ev.CyclesTotal).
		AddField("active", ev.Active).
		AddField("finished", ev.Finished).
		AddField("culled", ev.Culled).
		SetTime(ev.Time)
	return s.writeAPI.WritePoint(ctx, p)
}

// Close releases the underlying client.
func (s *InfluxSink) Close() { s.client.Close() }
