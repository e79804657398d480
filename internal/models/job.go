package models

import (
	"time"
)

// JobStatus represents the state of an asynchronous generation job
type JobStatus string

const (
	JobStatusPending   JobStatus = "PENDING"
	JobStatusRunning   JobStatus = "RUNNING"
	JobStatusCompleted JobStatus = "COMPLETED"
	JobStatusFailed    JobStatus = "FAILED"
	JobStatusCancelled JobStatus = "CANCELLED"
)

// JobKind tells which batch operation a job runs
type JobKind string

const (
	JobKindGenerate   JobKind = "generate"
	JobKindRegenerate JobKind = "regenerate"
)

// Job tracks the progress of one batch
type Job struct {
	ID           string    `json:"id"`
	CollectionID string    `json:"collectionId"`
	Kind         JobKind   `json:"kind"`
	Status       JobStatus `json:"status"`
	Done         int       `json:"done"`
	Total        int       `json:"total"`
	ErrorMessage string    `json:"errorMessage,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Finished reports whether the job reached a terminal state
func (j *Job) Finished() bool {
	switch j.Status {
	case JobStatusCompleted, JobStatusFailed, JobStatusCancelled:
		return true
	}
	return false
}
