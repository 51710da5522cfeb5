// Implements the WaitingLine, which holds the IDs of patients that have
// arrived but have not yet been granted a desk.

package sim

import (
	"fmt"
	"strings"
)

// WaitingLine is the arrival-ordered set of patients not yet in service.
// Its length is what the queue-capacity check measures; the order in which
// desks are granted is decided by the PriorityResourcePool, not by this line.
type WaitingLine struct {
	ids []int
}

// Enqueue adds a patient to the back of the line.
func (wl *WaitingLine) Enqueue(id int) {
	wl.ids = append(wl.ids, id)
}

// Remove deletes the patient from the line and reports whether it was present.
func (wl *WaitingLine) Remove(id int) bool {
	for i, v := range wl.ids {
		if v == id {
			wl.ids = append(wl.ids[:i], wl.ids[i+1:]...)
			return true
		}
	}
	return false
}

// Len returns the number of patients waiting.
func (wl *WaitingLine) Len() int {
	return len(wl.ids)
}

// Items returns the line contents in arrival order.
// The returned slice is the line's internal storage -- callers MUST NOT modify it.
func (wl *WaitingLine) Items() []int {
	return wl.ids
}

func (wl *WaitingLine) String() string {
	var sb strings.Builder
	sb.WriteString("[")
	for i, id := range wl.ids {
		sb.WriteString(fmt.Sprint(id))
		if i < len(wl.ids)-1 {
			sb.WriteString(" ")
		}
	}
	sb.WriteString("]")
	return sb.String()
}
