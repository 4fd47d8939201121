package domain

import "time"

// Call outcomes recorded for every upstream attempt.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

// CallRecord describes one upstream call. It never carries message content.
type CallRecord struct {
	CorrelationID  string
	Provider       string
	Outcome        string
	UpstreamStatus int
	Duration       time.Duration
	Timestamp      time.Time
}
