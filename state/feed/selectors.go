package feed

import "github.com/stellarburgers/orderclient/client"

// ReadyNumbers lists the numbers of completed feed orders, feed order
// preserved, at most limit entries. The feed page shows them in the
// "ready" column.
func (sn Snapshot) ReadyNumbers(limit int) []int {
	return sn.numbersByStatus(client.StatusDone, limit)
}

// PendingNumbers lists the numbers of in-progress feed orders, at most
// limit entries.
func (sn Snapshot) PendingNumbers(limit int) []int {
	return sn.numbersByStatus(client.StatusPending, limit)
}

func (sn Snapshot) numbersByStatus(status string, limit int) []int {
	var numbers []int
	for _, o := range sn.Orders {
		if o.Status != status {
			continue
		}
		numbers = append(numbers, o.Number)
		if limit > 0 && len(numbers) == limit {
			break
		}
	}
	return numbers
}
