package godi

import (
	"fmt"
	"sort"
	"strings"

	"github.com/a-peyrard/godi-mongo/set"
)

type (
	// Tracker follows the path of services being visited, to detect dependency cycles.
	Tracker struct {
		visited set.Set[string]
		stack   []string
	}
)

func NewTracker() *Tracker {
	return &Tracker{
		visited: set.New[string](),
		stack:   make([]string, 0),
	}
}

func (tracker *Tracker) Push(name string) error {
	if tracker.visited.Contains(name) {
		cycle := []string{name}
		for i := len(tracker.stack) - 1; i >= 0; i-- {
			cycle = append(cycle, tracker.stack[i])
			if tracker.stack[i] == name {
				break
			}
		}

		return fmt.Errorf("cycle found:\n%s", formatCycle(cycle))
	}
	tracker.visited.Add(name)
	tracker.stack = append(tracker.stack, name)

	return nil
}

func (tracker *Tracker) Pop() string {
	if len(tracker.stack) == 0 {
		panic("tracker: pop from empty stack")
	}
	name := tracker.stack[len(tracker.stack)-1]
	tracker.stack = tracker.stack[:len(tracker.stack)-1]
	tracker.visited.Remove(name)

	return name
}

func formatCycle(cycle []string) string {
	var sb strings.Builder
	for depth, i := 0, len(cycle)-1; i >= 0; depth, i = depth+1, i-1 {
		sb.WriteString(strings.Repeat("\t", depth))
		if i != len(cycle)-1 {
			sb.WriteString(" -> ")
		}
		sb.WriteString(cycle[i])
		sb.WriteByte('\n')
	}
	return sb.String()
}

// checkGraph makes sure every dependency is registered and that no cycle exists,
// so concurrent resolutions can never wait on each other forever.
func checkGraph(descriptors map[string]Descriptor) error {
	names := make([]string, 0, len(descriptors))
	for name := range descriptors {
		names = append(names, name)
	}
	sort.Strings(names)

	checked := set.New[string]()
	for _, name := range names {
		if err := visit(name, descriptors, NewTracker(), checked); err != nil {
			return err
		}
	}
	return nil
}

func visit(name string, descriptors map[string]Descriptor, tracker *Tracker, checked set.Set[string]) error {
	if checked.Contains(name) {
		return nil
	}
	if err := tracker.Push(name); err != nil {
		return err
	}
	for _, dep := range descriptors[name].Dependencies {
		if _, found := descriptors[dep]; !found {
			return fmt.Errorf("service %s depends on unknown service %s", name, dep)
		}
		if err := visit(dep, descriptors, tracker, checked); err != nil {
			return err
		}
	}
	tracker.Pop()
	checked.Add(name)

	return nil
}
