package services

import (
	"sort"
	"time"

	"warehouse/internal/core/domain/model/inventory"
	"warehouse/internal/core/domain/model/order"
)

// Reservation is one planned draw of quantity from a ledger row. The planner
// produces reservations; the allocation use case turns them into ledger
// updates and allocation records inside a transaction.
type Reservation struct {
	Inventory *inventory.Inventory
	Quantity  int
}

// LinePlan is the planner's answer for one order line: the reservations that
// satisfy it, in policy order, and the quantity that could not be covered.
type LinePlan struct {
	Line         *order.Line
	Reservations []Reservation
	Shortfall    int
}

// AllocationPlanner is a domain service that decides which stock satisfies
// which order line. It is pure: it ranks candidate ledger rows by the line's
// effective policy and plans greedy draws, without touching the ledger.
//
// Policy ordering:
//   - FIFO: oldest receipt first
//   - FEFO: earliest expiry first, rows without expiry last, receipt age
//     breaking ties
//   - LIFO: newest receipt first
//   - MANUAL: planned as FIFO until an operator intervenes
//
// Rows that are not allocatable (non-available disposition or nothing free)
// and lots expiring inside the product's safety buffer are never candidates.
type AllocationPlanner struct{}

// NewAllocationPlanner creates a new AllocationPlanner instance.
func NewAllocationPlanner() AllocationPlanner {
	return AllocationPlanner{}
}

// PlanLine plans reservations for one order line from candidate ledger rows.
// Candidates are filtered, ranked by the line's effective policy, then drawn
// from greedily until the line's remaining quantity is covered or candidates
// run out. The remainder becomes the plan's Shortfall.
//
// safetyBufferDays excludes lots expiring within that many days of now;
// zero disables the exclusion.
func (p AllocationPlanner) PlanLine(
	line *order.Line,
	orderPolicy order.Policy,
	candidates []*inventory.Inventory,
	safetyBufferDays int,
	now time.Time,
) (LinePlan, error) {
	if err := line.Validate(); err != nil {
		return LinePlan{}, err
	}

	eligible := p.filterCandidates(candidates, safetyBufferDays, now)
	p.rankByPolicy(eligible, line.EffectivePolicy(orderPolicy))

	plan := LinePlan{Line: line}
	remaining := line.RemainingToAllocate()
	for _, inv := range eligible {
		if remaining == 0 {
			break
		}
		draw := inv.QuantityAvailable()
		if draw > remaining {
			draw = remaining
		}
		plan.Reservations = append(plan.Reservations, Reservation{
			Inventory: inv,
			Quantity:  draw,
		})
		remaining -= draw
	}
	plan.Shortfall = remaining

	return plan, nil
}

func (p AllocationPlanner) filterCandidates(
	candidates []*inventory.Inventory,
	safetyBufferDays int,
	now time.Time,
) []*inventory.Inventory {
	eligible := make([]*inventory.Inventory, 0, len(candidates))
	for _, inv := range candidates {
		if inv == nil || inv.Validate() != nil {
			continue
		}
		if !inv.IsAllocatable() {
			continue
		}
		if safetyBufferDays > 0 && inv.ExpiresWithin(safetyBufferDays, now) {
			continue
		}
		eligible = append(eligible, inv)
	}
	return eligible
}

func (p AllocationPlanner) rankByPolicy(rows []*inventory.Inventory, policy order.Policy) {
	switch policy {
	case order.PolicyFEFO:
		sort.SliceStable(rows, func(i, j int) bool {
			left, right := rows[i].ExpiryDate(), rows[j].ExpiryDate()
			switch {
			case left == nil && right == nil:
				return rows[i].ReceivedAt().Before(rows[j].ReceivedAt())
			case left == nil:
				return false
			case right == nil:
				return true
			case left.Equal(*right):
				return rows[i].ReceivedAt().Before(rows[j].ReceivedAt())
			default:
				return left.Before(*right)
			}
		})
	case order.PolicyLIFO:
		sort.SliceStable(rows, func(i, j int) bool {
			return rows[i].ReceivedAt().After(rows[j].ReceivedAt())
		})
	default:
		// FIFO, and MANUAL until an operator pins specific lots.
		sort.SliceStable(rows, func(i, j int) bool {
			return rows[i].ReceivedAt().Before(rows[j].ReceivedAt())
		})
	}
}
