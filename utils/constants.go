package utils

import "time"

// SessionCachePrefix is the prefix used for Redis booking-session keys.
const SessionCachePrefix = "session:timeline:"

// DefaultSessionTTL applies when SESSION_TTL_MINUTES is unset.
const DefaultSessionTTL = 60 * time.Minute
