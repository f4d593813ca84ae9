package perf

import "time"

// A FlameNode is one bar of a flame graph. Offsets and durations are in
// microseconds, relative to the start of the request.
type FlameNode struct {
	Offset      int64        `json:"offset"`
	Duration    int64        `json:"duration"`
	Category    string       `json:"category,omitempty"`
	Description string       `json:"description,omitempty"`
	Children    []*FlameNode `json:"children,omitempty"`

	end time.Time
}

// Flame nests the request's blocks under whichever earlier block was still
// running when they ended. Blocks that outlive every open block become
// children of the root, which covers the whole request.
func (rp *RequestPerf) Flame() *FlameNode {
	root := &FlameNode{
		Duration: rp.End.Sub(rp.Start).Microseconds(),
		end:      rp.End,
	}

	stack := []*FlameNode{root}
	for _, block := range rp.Blocks {
		for len(stack) > 1 && block.End.After(stack[len(stack)-1].end) {
			stack = stack[:len(stack)-1]
		}

		node := &FlameNode{
			Offset:      block.Start.Sub(rp.Start).Microseconds(),
			Duration:    block.Duration().Microseconds(),
			Category:    block.Category,
			Description: block.Description,
			end:         block.End,
		}
		parent := stack[len(stack)-1]
		parent.Children = append(parent.Children, node)
		stack = append(stack, node)
	}

	return root
}
