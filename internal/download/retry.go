package download

import "time"

// RetryPolicy bounds the resubmission loop for retryable failures.
// Delays grow exponentially from BaseDelay and are capped at MaxDelay.
type RetryPolicy struct {
	MaxAttempts int
	BaseDelay   time.Duration
	MaxDelay    time.Duration
	Multiplier  float64
}

// DefaultRetryPolicy mirrors the fixed retry configuration: three attempts,
// two second base delay, doubling, one minute cap.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts: 3,
		BaseDelay:   2 * time.Second,
		MaxDelay:    60 * time.Second,
		Multiplier:  2,
	}
}

// NextDelay returns the wait before the next submission given the number of
// failed attempts so far, and false once the attempt budget is spent.
func (p RetryPolicy) NextDelay(failed int) (time.Duration, bool) {
	if failed >= p.MaxAttempts {
		return 0, false
	}

	delay := p.BaseDelay
	if delay <= 0 {
		delay = 500 * time.Millisecond
	}
	multiplier := p.Multiplier
	if multiplier <= 1 {
		multiplier = 2
	}

	for i := 1; i < failed; i++ {
		delay = time.Duration(float64(delay) * multiplier)
		if p.MaxDelay > 0 && delay >= p.MaxDelay {
			return p.MaxDelay, true
		}
	}
	if p.MaxDelay > 0 && delay > p.MaxDelay {
		delay = p.MaxDelay
	}
	return delay, true
}
