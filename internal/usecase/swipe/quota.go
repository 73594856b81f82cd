package swipe

import (
	"time"

	"github.com/mdating/mdating-backend/internal/entity"
)

// FreeDailySwipeLimit is the per-calendar-day allowance for free accounts.
const FreeDailySwipeLimit = 10

// EvaluateQuota decides whether one more swipe is allowed and what the
// user's daily count becomes. The day boundary is calendar-based, not a
// rolling 24h window: the first swipe of a new day resets the count to 1.
// Premium accounts are never limited. Pure function, no I/O.
func EvaluateQuota(tier entity.AccountType, dailySwipeCount int, lastSwipeDate *time.Time, now time.Time) (allowed bool, newCount int) {
	newCount = 1
	if lastSwipeDate != nil && sameCalendarDay(*lastSwipeDate, now) {
		newCount = dailySwipeCount + 1
	}

	if tier != entity.AccountPremium && newCount > FreeDailySwipeLimit {
		return false, newCount
	}
	return true, newCount
}

func sameCalendarDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
