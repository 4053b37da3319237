// Package timeline packs same-day tasks into non-overlapping visual lanes.
package timeline

import "slices"

// Task is a time-boxed entry for a single calendar day.
// Title, Type and Description are carried through untouched.
type Task struct {
	ID          string `json:"id" yaml:"id"`
	StartTime   string `json:"start_time" yaml:"start_time"`
	EndTime     string `json:"end_time" yaml:"end_time"`
	Title       string `json:"title" yaml:"title"`
	Type        string `json:"type" yaml:"type"`
	Description string `json:"description,omitempty" yaml:"description"`
}

// Placement is a Task annotated with its lane. TotalLanes is the same for
// every placement of one Pack call.
type Placement struct {
	Task
	LaneIndex  int `json:"lane_index"`
	TotalLanes int `json:"total_lanes"`
}

// Start returns the task start in minutes since midnight.
func (t Task) Start() int { return ParseClock(t.StartTime) }

// End returns the task end in minutes since midnight.
func (t Task) End() int { return ParseClock(t.EndTime) }

// Duration is End-Start. It is negative when the end precedes the start;
// clamping to a visible width is left to the renderer.
func (t Task) Duration() int { return t.End() - t.Start() }

// Pack assigns every task the lowest-indexed lane that is free by the time
// the task starts. Tasks are visited by ascending start, longer first on
// equal starts, input order otherwise. The result is in that visiting order.
func Pack(tasks []Task) []Placement {
	type keyed struct {
		task       Task
		start, end int
	}

	ordered := make([]keyed, len(tasks))
	for i, t := range tasks {
		ordered[i] = keyed{task: t, start: t.Start(), end: t.End()}
	}
	slices.SortStableFunc(ordered, func(a, b keyed) int {
		if a.start != b.start {
			return a.start - b.start
		}
		return (b.end - b.start) - (a.end - a.start)
	})

	placements := make([]Placement, len(ordered))
	var laneEnds []int
	for i, k := range ordered {
		lane := -1
		for j, end := range laneEnds {
			if end <= k.start {
				lane = j
				break
			}
		}
		if lane == -1 {
			lane = len(laneEnds)
			laneEnds = append(laneEnds, k.end)
		} else {
			laneEnds[lane] = k.end
		}
		placements[i] = Placement{Task: k.task, LaneIndex: lane}
	}

	for i := range placements {
		placements[i].TotalLanes = len(laneEnds)
	}
	return placements
}

// LaneCount reports the number of lanes used by a Pack result; 0 when empty.
func LaneCount(placements []Placement) int {
	if len(placements) == 0 {
		return 0
	}
	return placements[0].TotalLanes
}
