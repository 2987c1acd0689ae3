// Package repository persists benchmark run history and a queue of pending
// benchmark jobs using GORM, grounded on the teacher's GORM model layer.
package repository

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

// JobStatus is the lifecycle state of a queued BenchmarkJob.
type JobStatus string

const (
	JobStatusPending   JobStatus = "pending"
	JobStatusRunning   JobStatus = "running"
	JobStatusCompleted JobStatus = "completed"
	JobStatusFailed    JobStatus = "failed"
)

// BenchmarkRun represents the benchmark_runs table: one row per
// make_bfs_tree invocation.
type BenchmarkRun struct {
	ID                int64     `gorm:"column:id;primaryKey;autoIncrement"`
	RunUUID           string    `gorm:"column:run_uuid;type:varchar(64);uniqueIndex"`
	JobUUID           *string   `gorm:"column:job_uuid;type:varchar(64);index"`
	EdgeCount         int64     `gorm:"column:edge_count"`
	NumVertices       int64     `gorm:"column:num_vertices"`
	SourceVertex      int64     `gorm:"column:source_vertex"`
	Workers           int       `gorm:"column:workers"`
	ElapsedMillis     float64   `gorm:"column:elapsed_millis"`
	LevelsReached     int       `gorm:"column:levels_reached"`
	VisitedCount      int64     `gorm:"column:visited_count"`
	TEPS              float64   `gorm:"column:teps"`
	DirectionSwitches int       `gorm:"column:direction_switches"`
	Metadata          JSONField `gorm:"column:metadata;type:json"`
	CreatedAt         time.Time `gorm:"column:created_at;autoCreateTime"`
}

// TableName returns the table name for BenchmarkRun.
func (BenchmarkRun) TableName() string { return "benchmark_runs" }

// BenchmarkJob represents the benchmark_jobs table: a queued unit of work
// for internal/scheduler to pick up and run through the CSR builder and BFS
// driver.
type BenchmarkJob struct {
	ID           int64      `gorm:"column:id;primaryKey;autoIncrement"`
	JobUUID      string     `gorm:"column:job_uuid;type:varchar(64);uniqueIndex"`
	EdgeListPath string     `gorm:"column:edge_list_path;type:varchar(512)"`
	SourceVertex int64      `gorm:"column:source_vertex"`
	RepeatCount  int        `gorm:"column:repeat_count"`
	Status       JobStatus  `gorm:"column:status;type:varchar(16);index"`
	ErrorInfo    string     `gorm:"column:error_info;type:text"`
	CreatedAt    time.Time  `gorm:"column:created_at;autoCreateTime"`
	StartedAt    *time.Time `gorm:"column:started_at"`
	CompletedAt  *time.Time `gorm:"column:completed_at"`
}

// TableName returns the table name for BenchmarkJob.
func (BenchmarkJob) TableName() string { return "benchmark_jobs" }

// JSONField is a custom type for handling JSON columns in GORM, carried
// over from the teacher almost verbatim.
type JSONField []byte

// Value implements driver.Valuer.
func (j JSONField) Value() (driver.Value, error) {
	if j == nil {
		return nil, nil
	}
	return []byte(j), nil
}

// Scan implements sql.Scanner.
func (j *JSONField) Scan(value interface{}) error {
	if value == nil {
		*j = nil
		return nil
	}
	switch v := value.(type) {
	case []byte:
		*j = append((*j)[0:0], v...)
		return nil
	case string:
		*j = []byte(v)
		return nil
	default:
		return errors.New("unsupported type for JSONField")
	}
}

// MarshalJSON implements json.Marshaler.
func (j JSONField) MarshalJSON() ([]byte, error) {
	if j == nil {
		return []byte("null"), nil
	}
	return j, nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (j *JSONField) UnmarshalJSON(data []byte) error {
	if data == nil || string(data) == "null" {
		*j = nil
		return nil
	}
	*j = append((*j)[0:0], data...)
	return nil
}

// MarshalMetadata encodes an arbitrary metadata map into a JSONField.
func MarshalMetadata(m map[string]interface{}) (JSONField, error) {
	if m == nil {
		return nil, nil
	}
	b, err := json.Marshal(m)
	if err != nil {
		return nil, err
	}
	return JSONField(b), nil
}
