package collect

import "time"

// CachedSuffix is appended to Source when cached data is shown.
const CachedSuffix = " (cached)"

// StaleNote is appended to Error when cached data is shown.
const StaleNote = " | showing cached data"

type cacheEntry[T any] struct {
	status     T
	capturedAt time.Time
}

// Cache remembers the last good AWS and PR results so a transient failure
// does not blank those panes. Git, host metrics and plugins are never cached.
//
// A Cache is owned by a single goroutine (the collection loop) and is not
// safe for concurrent use.
type Cache struct {
	aws *cacheEntry[AWSStatus]
	prs *cacheEntry[PRStatus]

	// Now is the clock used for capture times and age checks.
	Now func() time.Time
}

// NewCache returns an empty cache using the wall clock.
func NewCache() *Cache {
	return &Cache{Now: time.Now}
}

// Apply updates the cache from snap and patches failed sources in snap from
// entries no older than window.
//
// A successful source overwrites its entry. A failed source with a usable
// entry gets the cached lists spliced in, its Source marked "(cached)" and its
// Error suffixed with " | showing cached data". Without a usable entry the
// failure passes through unchanged.
func (c *Cache) Apply(snap *Snapshot, window time.Duration) {
	now := c.now()

	if snap.AWS.Error == "" {
		c.aws = &cacheEntry[AWSStatus]{status: snap.AWS.Clone(), capturedAt: now}
	} else if c.usable(c.aws != nil, entryTime(c.aws), now, window) {
		cached := c.aws.status.Clone()
		snap.AWS.Instances = cached.Instances
		snap.AWS.Items = cached.Items
		snap.AWS.Source = cached.Source + CachedSuffix
		snap.AWS.Error += StaleNote
	}

	if snap.PRs.Error == "" {
		c.prs = &cacheEntry[PRStatus]{status: snap.PRs.Clone(), capturedAt: now}
	} else if c.usable(c.prs != nil, entryTime(c.prs), now, window) {
		cached := c.prs.status.Clone()
		snap.PRs.Open = cached.Open
		snap.PRs.Items = cached.Items
		snap.PRs.Source = cached.Source + CachedSuffix
		snap.PRs.Error += StaleNote
	}
}

func (c *Cache) now() time.Time {
	if c.Now == nil {
		return time.Now()
	}
	return c.Now()
}

// usable compares ages in whole seconds, so 120.4s is still inside a 120s window.
func (c *Cache) usable(present bool, capturedAt, now time.Time, window time.Duration) bool {
	return present && int64(now.Sub(capturedAt).Seconds()) <= int64(window.Seconds())
}

func entryTime[T any](e *cacheEntry[T]) time.Time {
	if e == nil {
		return time.Time{}
	}
	return e.capturedAt
}
