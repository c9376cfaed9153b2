package ports

import "time"

// StepReporter receives the lifecycle of pipeline steps.
// It decouples step tracing from how completion is shown to the user.
//
//go:generate mockgen -source=reporter.go -destination=mocks/mock_reporter.go -package=mocks
type StepReporter interface {
	// OnStepStart is called when a step begins.
	OnStepStart(spanID, name string, startTime time.Time)

	// OnStepComplete is called when a step ends.
	// err is nil if the step succeeded.
	OnStepComplete(spanID string, endTime time.Time, err error)
}
