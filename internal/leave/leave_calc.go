package leave

import (
	"fmt"
	"math"
	"time"

	leaveerrors "go-hrcore/internal/leave/errors"
	"go-hrcore/internal/shared/apperror"

	"github.com/shopspring/decimal"
)

var halfDay = decimal.NewFromFloat(0.5)

// ComputeLeaveDays counts calendar days from..to inclusive and takes half a
// day off for each half-day flag. The result never goes below zero.
func ComputeLeaveDays(from, to time.Time, firstHalf, lastHalf bool) (decimal.Decimal, error) {
	if to.Before(from) {
		return decimal.Zero, leaveerrors.ErrInvalidDateRange
	}

	span := math.Ceil(to.Sub(from).Hours() / 24)
	days := decimal.NewFromInt(int64(span) + 1)
	if firstHalf {
		days = days.Sub(halfDay)
	}
	if lastHalf {
		days = days.Sub(halfDay)
	}
	if days.IsNegative() {
		return decimal.Zero, nil
	}
	return days, nil
}

// ValidateSubmission applies the balance rule and then the notice rule to a
// non-draft request. A nil balance skips the balance rule.
func ValidateSubmission(
	days decimal.Decimal,
	leaveType LeaveType,
	balance *LeaveBalance,
	fromDate, today time.Time,
	isDraft bool,
) error {
	if isDraft {
		return nil
	}

	if balance != nil && days.GreaterThan(balance.BalanceDays) {
		return apperror.Detailed(
			leaveerrors.ErrInsufficientBalance,
			fmt.Sprintf("Insufficient leave balance: requested %s days, available %s days", days.String(), balance.BalanceDays.String()),
			map[string]string{
				"requested_days": days.String(),
				"balance_days":   balance.BalanceDays.String(),
			},
		)
	}

	if leaveType.MinNoticeDays != nil {
		notice := DaysBetween(today, fromDate)
		if notice < *leaveType.MinNoticeDays {
			return apperror.Detailed(
				leaveerrors.ErrInsufficientNotice,
				fmt.Sprintf("Insufficient notice: %s requires %d days notice, request gives %d", leaveType.Name, *leaveType.MinNoticeDays, notice),
				map[string]int{
					"required_days": *leaveType.MinNoticeDays,
					"actual_days":   notice,
				},
			)
		}
	}

	return nil
}

// DaysBetween is the whole-day distance from a to b, by calendar date.
func DaysBetween(a, b time.Time) int {
	return int(dateOnly(b).Sub(dateOnly(a)).Hours() / 24)
}

// FindOverlaps counts team leaves that are PENDING or APPROVED, end on or
// after today and intersect [from, to].
func FindOverlaps(from, to, today time.Time, team []Leave) int {
	count := 0
	for _, l := range team {
		if l.Status != StatusPending && l.Status != StatusApproved {
			continue
		}
		if dateOnly(l.ToDate).Before(dateOnly(today)) {
			continue
		}
		if !from.After(l.ToDate) && !to.Before(l.FromDate) {
			count++
		}
	}
	return count
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
