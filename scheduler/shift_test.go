package scheduler

import (
	"sort"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// demandCustomer builds a customerDemand with explicit per-hour call levels,
// bypassing uniform expansion so tests can start from uneven load.
func demandCustomer(name string, priority, start, end int, agentsPerCall decimal.Decimal, calls map[int]int64) *customerDemand {
	cust := &customerDemand{
		name:          name,
		priority:      priority,
		startHour:     start,
		endHour:       end,
		agentsPerCall: agentsPerCall,
	}
	for h := start; h < end; h++ {
		c := decimal.NewFromInt(calls[h])
		cust.byHour[h] = &hourlyDemand{
			customer:      cust,
			hour:          h,
			originalCalls: c,
			currentCalls:  c,
		}
	}
	return cust
}

// newDemandSet assembles an arena over the given customers with the same
// orderings expandDemands would build.
func newDemandSet(custs ...*customerDemand) *demandSet {
	ds := &demandSet{}
	for i, cust := range custs {
		cust.order = i
		for _, rec := range cust.byHour {
			if rec != nil {
				ds.records = append(ds.records, rec)
			}
		}
		ds.customers = append(ds.customers, cust)
	}

	ds.byPriorityAsc = append([]*customerDemand(nil), ds.customers...)
	sort.SliceStable(ds.byPriorityAsc, func(i, j int) bool {
		return ds.byPriorityAsc[i].priority < ds.byPriorityAsc[j].priority
	})
	ds.byPriorityDesc = append([]*customerDemand(nil), ds.customers...)
	sort.SliceStable(ds.byPriorityDesc, func(i, j int) bool {
		return ds.byPriorityDesc[i].priority > ds.byPriorityDesc[j].priority
	})
	return ds
}

func totalCurrentCalls(cust *customerDemand) decimal.Decimal {
	total := decimal.Zero
	for _, rec := range cust.byHour {
		if rec != nil {
			total = total.Add(rec.currentCalls)
		}
	}
	return total
}

func TestRedistribute_MovesOverflowToNearestSpareHour(t *testing.T) {
	// Hour 9 needs 5 agents, hour 10 needs 1, capacity 3 everywhere: two
	// agents' worth of calls move from hour 9 to hour 10 and nothing is
	// left unmet.
	one := decimal.NewFromInt(1)
	cust := demandCustomer("C", 3, 9, 11, one, map[int]int64{9: 5, 10: 1})
	ds := newDemandSet(cust)

	moves := redistribute(ds, 3)

	require.Len(t, moves, 1)
	assert.Equal(t, "C", moves[0].Customer)
	assert.Equal(t, 9, moves[0].FromHour)
	assert.Equal(t, 10, moves[0].ToHour)
	assert.True(t, moves[0].CallsMoved.Equal(decimal.NewFromInt(2)))

	assert.True(t, cust.byHour[9].currentCalls.Equal(decimal.NewFromInt(3)))
	assert.True(t, cust.byHour[10].currentCalls.Equal(decimal.NewFromInt(3)))

	sched := allocate(ds, intPtrInternal(3))
	assert.Equal(t, 3, sched.Hours[9].TotalAgents)
	assert.Equal(t, 3, sched.Hours[10].TotalAgents)
	assert.Empty(t, sched.Hours[9].Unmet)
	assert.Empty(t, sched.Hours[10].Unmet)
}

func TestRedistribute_NearestTieBreaksToEarlierHour(t *testing.T) {
	// Hours 9 and 11 are equidistant from the overflowing hour 10 and both
	// have spare capacity; the earlier hour must absorb the overflow.
	one := decimal.NewFromInt(1)
	cust := demandCustomer("C", 3, 8, 12, one, map[int]int64{10: 5})
	ds := newDemandSet(cust)

	moves := redistribute(ds, 3)

	require.NotEmpty(t, moves)
	assert.Equal(t, 9, moves[0].ToHour)
}

func TestRedistribute_NoOpWhenUnderCapacity(t *testing.T) {
	one := decimal.NewFromInt(1)
	cust := demandCustomer("C", 2, 9, 12, one, map[int]int64{9: 2, 10: 3, 11: 1})
	ds := newDemandSet(cust)

	moves := redistribute(ds, 3)

	assert.Empty(t, moves)
	assert.True(t, cust.byHour[9].currentCalls.Equal(decimal.NewFromInt(2)))
	assert.True(t, cust.byHour[10].currentCalls.Equal(decimal.NewFromInt(3)))
	assert.True(t, cust.byHour[11].currentCalls.Equal(decimal.NewFromInt(1)))
}

func TestRedistribute_LowestPriorityShiftedFirst(t *testing.T) {
	// Both customers contribute to the overflow at hour 9, but shifting the
	// priority-5 customer alone resolves it; the priority-1 customer's
	// distribution must stay untouched.
	one := decimal.NewFromInt(1)
	top := demandCustomer("Top", 1, 9, 12, one, map[int]int64{9: 3, 10: 0, 11: 0})
	flex := demandCustomer("Flex", 5, 9, 12, one, map[int]int64{9: 2, 10: 0, 11: 0})
	ds := newDemandSet(top, flex)

	moves := redistribute(ds, 3)

	require.NotEmpty(t, moves)
	for _, move := range moves {
		assert.Equal(t, "Flex", move.Customer)
	}
	assert.True(t, top.byHour[9].currentCalls.Equal(decimal.NewFromInt(3)))
	assert.True(t, top.byHour[10].currentCalls.IsZero())
	assert.True(t, top.byHour[11].currentCalls.IsZero())
}

func TestRedistribute_NeverLeavesCustomerWindow(t *testing.T) {
	// The only spare hours lie outside the overflowing customer's window,
	// so its excess is unmovable and stays as unmet demand.
	one := decimal.NewFromInt(1)
	narrow := demandCustomer("Narrow", 4, 9, 11, one, map[int]int64{9: 4, 10: 3})
	ds := newDemandSet(narrow)

	moves := redistribute(ds, 3)

	// Hour 10 can only take 3; one agent's worth of calls from hour 9 has
	// nowhere to go.
	for _, move := range moves {
		assert.GreaterOrEqual(t, move.ToHour, narrow.startHour)
		assert.Less(t, move.ToHour, narrow.endHour)
	}
	for h := 0; h < len(narrow.byHour); h++ {
		if h >= narrow.startHour && h < narrow.endHour {
			continue
		}
		assert.Nil(t, narrow.byHour[h], "no demand record outside the window")
	}

	sched := allocate(ds, intPtrInternal(3))
	require.Len(t, sched.Hours[9].Unmet, 1)
	assert.Equal(t, 1, sched.Hours[9].Unmet[0].Agents)
}

func TestRedistribute_ConservesVolumeAndOriginals(t *testing.T) {
	one := decimal.NewFromInt(1)
	half := decimal.RequireFromString("0.5")
	a := demandCustomer("A", 2, 9, 13, one, map[int]int64{9: 6, 10: 1, 11: 0, 12: 0})
	b := demandCustomer("B", 5, 8, 12, half, map[int]int64{8: 2, 9: 8, 10: 2, 11: 2})
	ds := newDemandSet(a, b)

	beforeA := totalCurrentCalls(a)
	beforeB := totalCurrentCalls(b)

	redistribute(ds, 4)

	assert.True(t, totalCurrentCalls(a).Equal(beforeA), "A volume conserved")
	assert.True(t, totalCurrentCalls(b).Equal(beforeB), "B volume conserved")

	// originalCalls is the audit trail and never changes.
	assert.True(t, a.byHour[9].originalCalls.Equal(decimal.NewFromInt(6)))
	assert.True(t, b.byHour[9].originalCalls.Equal(decimal.NewFromInt(8)))

	for h := 0; h < 24; h++ {
		assert.LessOrEqual(t, ds.agentsAt(h), 4, "capacity bound after redistribution, hour %d", h)
	}
}

func TestSpilloverCandidates_OrderedByDistanceThenHour(t *testing.T) {
	one := decimal.NewFromInt(1)
	cust := demandCustomer("C", 3, 8, 14, one, map[int]int64{11: 9})
	ds := newDemandSet(cust)

	got := spilloverCandidates(ds, cust, 11, 3)

	// Distances from 11: 10 and 12 at 1, 9 and 13 at 2, 8 at 3.
	assert.Equal(t, []int{10, 12, 9, 13, 8}, got)
}

func intPtrInternal(v int) *int { return &v }
