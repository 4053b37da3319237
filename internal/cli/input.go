package cli

import (
	"errors"
	"fmt"
	"io"
	"slices"

	"github.com/cmlabs-hris/hris-dar-go/internal/pkg/timeline"
	"gopkg.in/yaml.v3"
)

// undated groups tasks that carry no date field.
const undated = "undated"

type fileTask struct {
	Date          string `yaml:"date"`
	timeline.Task `yaml:",inline"`
}

type taskFile struct {
	Tasks []fileTask `yaml:"tasks"`
}

type dayTasks struct {
	Date  string
	Tasks []timeline.Task
}

// readTasks accepts either a bare list of tasks or a mapping with a "tasks"
// key. JSON input is read as YAML.
func readTasks(r io.Reader) ([]fileTask, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read task file: %w", err)
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("parse task file: %w", err)
	}
	if len(doc.Content) == 0 {
		return nil, nil
	}

	root := doc.Content[0]
	switch root.Kind {
	case yaml.SequenceNode:
		var tasks []fileTask
		if err := root.Decode(&tasks); err != nil {
			return nil, fmt.Errorf("decode tasks: %w", err)
		}
		return tasks, nil
	case yaml.MappingNode:
		var f taskFile
		if err := root.Decode(&f); err != nil {
			return nil, fmt.Errorf("decode tasks: %w", err)
		}
		return f.Tasks, nil
	default:
		return nil, errors.New("task file must hold a list of tasks or a \"tasks\" key")
	}
}

// groupByDate keeps input order within a day and orders days by date, with
// undated tasks last.
func groupByDate(tasks []fileTask) []dayTasks {
	index := make(map[string]int)
	var days []dayTasks
	for _, t := range tasks {
		date := t.Date
		if date == "" {
			date = undated
		}
		i, ok := index[date]
		if !ok {
			i = len(days)
			index[date] = i
			days = append(days, dayTasks{Date: date})
		}
		days[i].Tasks = append(days[i].Tasks, t.Task)
	}

	slices.SortStableFunc(days, func(a, b dayTasks) int {
		switch {
		case a.Date == b.Date:
			return 0
		case a.Date == undated:
			return 1
		case b.Date == undated:
			return -1
		case a.Date < b.Date:
			return -1
		default:
			return 1
		}
	})
	return days
}
