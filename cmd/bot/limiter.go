package main

import (
	"sync"

	"golang.org/x/time/rate"
)

const (
	// interactionRate is the sustained number of interactions a user may make per second.
	interactionRate = rate.Limit(1)

	// interactionBurst is the number of interactions a user may make at once.
	interactionBurst = 5

	// maxTrackedUsers caps the limiter table. It is reset when full.
	maxTrackedUsers = 10_000
)

// userLimiter rate limits interactions per user.
type userLimiter struct {
	mut      sync.Mutex
	limit    rate.Limit
	burst    int
	limiters map[string]*rate.Limiter
}

func newUserLimiter(limit rate.Limit, burst int) *userLimiter {
	return &userLimiter{
		limit:    limit,
		burst:    burst,
		limiters: make(map[string]*rate.Limiter),
	}
}

// Allow reports whether the user may make another interaction now.
func (u *userLimiter) Allow(userID string) bool {
	u.mut.Lock()
	l, ok := u.limiters[userID]
	if !ok {
		if len(u.limiters) >= maxTrackedUsers {
			u.limiters = make(map[string]*rate.Limiter)
		}
		l = rate.NewLimiter(u.limit, u.burst)
		u.limiters[userID] = l
	}
	u.mut.Unlock()

	return l.Allow()
}
