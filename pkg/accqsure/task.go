package accqsure

import (
	"context"
	"math"
	"time"

	"github.com/mitchellh/mapstructure"

	"github.com/accqsure/accqsure-go/pkg/accqsure/auth"
)

// Task is an asynchronous server-side job observed by polling.
type Task struct {
	TaskID         string      `mapstructure:"task_id"`
	OrganizationID string      `mapstructure:"organization_id"`
	Status         string      `mapstructure:"status"`
	Result         interface{} `mapstructure:"result"`
}

// Task terminal statuses.
const (
	taskStatusFinished = "finished"
	taskStatusFailed   = "failed"
	taskStatusCanceled = "canceled"
)

const (
	maxPollTimeout  = 24 * time.Hour
	minPollInterval = 5 * time.Second
	maxPollInterval = 60 * time.Second
)

// pollInterval picks a poll period proportional to the timeout, clamped to
// [5s, 60s] so short timeouts poll quickly and long ones back off, bounding
// total request volume either way.
func pollInterval(timeout time.Duration) time.Duration {
	interval := timeout / 60
	if interval < minPollInterval {
		return minPollInterval
	}
	if interval > maxPollInterval {
		return maxPollInterval
	}
	return interval
}

// sleep waits for d or until the context is cancelled. Tests replace it to
// avoid real waits.
var sleep = func(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// pollTask polls a task until it reaches a terminal state or the wall-clock
// budget is exhausted. It sleeps one interval before every poll, including
// the first, and the iteration count guarantees eventual return even if the
// task never terminates.
func (c *Client) pollTask(ctx context.Context, taskID string, timeout time.Duration) (interface{}, error) {
	if timeout > maxPollTimeout {
		return nil, &auth.ConfigurationError{
			Message: "timeout must be less than 24 hours",
		}
	}

	interval := pollInterval(timeout)
	iterations := int(math.Ceil(timeout.Seconds() / interval.Seconds()))

	for i := 0; i < iterations; i++ {
		if err := sleep(ctx, interval); err != nil {
			return nil, err
		}

		resp, err := c.query(ctx, "GET", "/task/"+taskID, nil, nil, nil)
		if err != nil {
			return nil, err
		}

		var task Task
		if err := mapstructure.Decode(resp, &task); err != nil {
			return nil, err
		}

		c.logger.Debug("polled task", "task_id", taskID, "status", task.Status)

		switch task.Status {
		case taskStatusFinished:
			return task.Result, nil
		case taskStatusFailed, taskStatusCanceled:
			return nil, &TaskError{Result: task.Result}
		}
	}

	return nil, &TimeoutError{TaskID: taskID}
}
