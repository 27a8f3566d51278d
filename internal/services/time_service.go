package services

import (
	"time"

	"tasklist/internal/domain"
)

// timeServiceImpl implements the TimeService interface
type timeServiceImpl struct {
	now        func() time.Time
	dateFormat string
}

// NewTimeService creates a new TimeService using the wall clock
func NewTimeService(dateFormat string) TimeService {
	return NewTimeServiceWithClock(dateFormat, time.Now)
}

// NewTimeServiceWithClock creates a TimeService reading time from now
func NewTimeServiceWithClock(dateFormat string, now func() time.Time) TimeService {
	return &timeServiceImpl{
		now:        now,
		dateFormat: dateFormat,
	}
}

// Now returns the current time
func (t *timeServiceImpl) Now() time.Time {
	return t.now()
}

// NextID uses the Unix millisecond timestamp of at. If the clock repeats or
// runs backwards the ID is bumped past the largest one already issued, so
// IDs are never reused.
func (t *timeServiceImpl) NextID(at time.Time, list domain.TaskList, last int64) int64 {
	floor := list.MaxID()
	if last > floor {
		floor = last
	}

	id := at.UnixMilli()
	if id <= floor {
		id = floor + 1
	}
	return id
}

// DateStamp formats at as the task's dateAdded value in local time
func (t *timeServiceImpl) DateStamp(at time.Time) string {
	return at.Local().Format(t.dateFormat)
}
