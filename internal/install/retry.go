// SPDX-License-Identifier: MPL-2.0

package install

import (
	"context"
	"fmt"
)

// Retry runs op up to maxAttempts times with no delay between attempts.
// It checks ctx.Err() between retries to respect cancellation immediately,
// preventing wasted work when the caller has already abandoned the operation.
//
// It returns the number of attempts actually made and the final error: nil
// on success, the last attempt's error on exhaustion.
func Retry(ctx context.Context, maxAttempts int, op func(attempt int) error) (int, error) {
	var lastErr error
	for attempt := range maxAttempts {
		if attempt > 0 {
			if err := ctx.Err(); err != nil {
				return attempt, fmt.Errorf("retry aborted: %w", err)
			}
		}

		err := op(attempt)
		if err == nil {
			return attempt + 1, nil
		}
		lastErr = err
	}
	return maxAttempts, lastErr
}
