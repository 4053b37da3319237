package dar

import (
	"github.com/cmlabs-hris/hris-dar-go/internal/domain/dar"
)

// dayPlan is the set of writes that turns the stored tasks of a report into
// the submitted list.
type dayPlan struct {
	create []dar.Task
	update []dar.Task
	delete []string
}

func (p dayPlan) empty() bool {
	return len(p.create) == 0 && len(p.update) == 0 && len(p.delete) == 0
}

// planDay diffs incoming against stored. Incoming tasks without an ID are
// created, known IDs whose content changed are updated, and stored tasks
// absent from incoming are deleted. An incoming ID that is not stored on
// this report yields dar.ErrTaskNotFound.
func planDay(stored, incoming []dar.Task) (dayPlan, error) {
	byID := make(map[string]dar.Task, len(stored))
	for _, t := range stored {
		byID[t.ID] = t
	}

	var plan dayPlan
	kept := make(map[string]bool, len(incoming))
	for _, in := range incoming {
		if in.ID == "" {
			plan.create = append(plan.create, in)
			continue
		}
		current, ok := byID[in.ID]
		if !ok {
			return dayPlan{}, dar.ErrTaskNotFound
		}
		kept[in.ID] = true
		if !current.SameContent(in) {
			in.ReportID = current.ReportID
			plan.update = append(plan.update, in)
		}
	}

	for _, t := range stored {
		if !kept[t.ID] {
			plan.delete = append(plan.delete, t.ID)
		}
	}
	return plan, nil
}
