// Package lifecycle holds shared constants for application start/stop handling.
package lifecycle

import "time"

// DefaultTimeout bounds how long a lifecycle hook may take before it is
// considered stuck.
const DefaultTimeout = 10 * time.Second
