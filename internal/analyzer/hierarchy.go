package analyzer

import (
	"github.com/ludo-technologies/dupedir/internal/counter"
)

// AccumulateHierarchy computes DirectFiles and SubtreeFiles for every
// registered directory and links each directory to its parent, registering
// missing ancestors on the way. It returns the root directories.
//
// Running it again recomputes everything from filesPerDir.
func AccumulateHierarchy(registry *DirectoryRegistry, filesPerDir *counter.Counter[string]) []DirID {
	for d := range registry.All() {
		d.Parent = NoDir
		d.Children = d.Children[:0]
	}

	var roots []DirID
	// Ancestors created inside the loop are appended to the arena and
	// visited by later iterations.
	for i := 0; i < registry.Len(); i++ {
		d := registry.Get(DirID(i))
		d.DirectFiles = filesPerDir.Count(d.Path)
		d.SubtreeFiles = d.DirectFiles

		parent, ok := parentPath(d.Path)
		if !ok {
			roots = append(roots, d.ID)
			continue
		}
		p := registry.GetOrCreate(parent)
		p.Children = append(p.Children, d.ID)
		d.Parent = p.ID
	}

	for _, root := range roots {
		accumulateSubtree(registry, root)
	}
	return roots
}

// accumulateSubtree adds every descendant's subtree count into its parent,
// children first. The walk is iterative so tree depth is not bounded by the
// goroutine stack.
func accumulateSubtree(registry *DirectoryRegistry, root DirID) {
	type frame struct {
		id    DirID
		child int
	}

	stack := []frame{{id: root}}
	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		d := registry.Get(top.id)

		if top.child < len(d.Children) {
			next := d.Children[top.child]
			top.child++
			stack = append(stack, frame{id: next})
			continue
		}

		stack = stack[:len(stack)-1]
		if d.Parent != NoDir {
			registry.Get(d.Parent).SubtreeFiles += d.SubtreeFiles
		}
	}
}
