// Package commenttree builds a publication's comment forest once and answers
// display and moderation queries over it.
//
// Nodes live in a flat slice and refer to each other by index. Children are kept in
// ascending creation order; ties keep the order of the input rows.
package commenttree

import (
	"log/slog"
	"sort"

	"github.com/google/uuid"

	"plataforma-formacao/internal/domain"
	"plataforma-formacao/internal/observability"
)

// DefaultMaxDepth is the Closure depth used when no WithMaxDepth option is given.
const DefaultMaxDepth = 32

const noParent = -1

type node struct {
	comment  domain.Comment
	parent   int
	children []int
	// detached marks a comment whose parent is missing, belongs to another
	// publication or is itself. Such a comment is never displayed.
	detached bool
}

// Forest indexes one publication's comment rows by parent, built once by Build.
type Forest struct {
	nodes    []node
	index    map[uuid.UUID]int
	roots    []int
	maxDepth int
	logger   *slog.Logger
}

// Option configures a Forest during Build.
type Option func(*Forest)

// WithMaxDepth bounds how many levels Closure descends below its target.
func WithMaxDepth(depth int) Option {
	return func(f *Forest) {
		if depth > 0 {
			f.maxDepth = depth
		}
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(f *Forest) {
		if logger != nil {
			f.logger = logger
		}
	}
}

// Build indexes rows into a forest. Rows may arrive in any order and may include
// hidden comments.
func Build(rows []domain.Comment, opts ...Option) *Forest {
	f := &Forest{
		index:    make(map[uuid.UUID]int, len(rows)),
		maxDepth: DefaultMaxDepth,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(f)
	}

	sorted := make([]domain.Comment, len(rows))
	copy(sorted, rows)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CreatedAt.Before(sorted[j].CreatedAt)
	})

	f.nodes = make([]node, 0, len(sorted))
	for _, c := range sorted {
		if _, dup := f.index[c.ID]; dup {
			f.logger.Warn("duplicate comment row ignored", "comment_id", c.ID)
			continue
		}
		c.Replies = nil
		f.index[c.ID] = len(f.nodes)
		f.nodes = append(f.nodes, node{comment: c, parent: noParent})
	}

	for i := range f.nodes {
		n := &f.nodes[i]
		if n.comment.ParentID == nil {
			f.roots = append(f.roots, i)
			continue
		}

		p, ok := f.index[*n.comment.ParentID]
		switch {
		case !ok:
			f.detach(i, "parent not found")
		case p == i:
			f.detach(i, "comment is its own parent")
		case f.nodes[p].comment.PublicationID != n.comment.PublicationID:
			f.detach(i, "parent belongs to another publication")
		default:
			n.parent = p
			f.nodes[p].children = append(f.nodes[p].children, i)
		}
	}

	return f
}

func (f *Forest) detach(i int, reason string) {
	f.nodes[i].detached = true
	f.logger.Warn("comment detached from tree",
		"comment_id", f.nodes[i].comment.ID,
		"parent_id", f.nodes[i].comment.ParentID,
		"reason", reason,
	)
}

// Lookup returns the stored row, hidden or not.
func (f *Forest) Lookup(id uuid.UUID) (domain.Comment, bool) {
	i, ok := f.index[id]
	if !ok {
		return domain.Comment{}, false
	}
	return f.nodes[i].comment, true
}

// Visible reports whether the comment would be displayed: it exists, is not hidden,
// and every ancestor up to a root is present and not hidden.
func (f *Forest) Visible(id uuid.UUID) bool {
	i, ok := f.index[id]
	if !ok {
		return false
	}

	for steps := 0; steps <= len(f.nodes); steps++ {
		n := f.nodes[i]
		if n.detached || n.comment.Hidden {
			return false
		}
		if n.parent == noParent {
			return true
		}
		i = n.parent
	}

	// parent chain longer than the forest means a cycle
	return false
}

// Materialize returns the visible roots with Replies filled in. Hidden comments and
// everything beneath them are left out.
func (f *Forest) Materialize() []*domain.Comment {
	roots := make([]*domain.Comment, 0, len(f.roots))
	for _, r := range f.roots {
		if f.nodes[r].comment.Hidden {
			continue
		}
		roots = append(roots, f.materializeFrom(r))
	}
	return roots
}

// Subtree materializes one comment with its visible replies. It returns false when the
// comment is unknown or not Visible.
func (f *Forest) Subtree(id uuid.UUID) (*domain.Comment, bool) {
	if !f.Visible(id) {
		return nil, false
	}
	return f.materializeFrom(f.index[id]), true
}

func (f *Forest) materializeFrom(start int) *domain.Comment {
	type item struct {
		idx int
		out *domain.Comment
	}

	root := f.nodes[start].comment
	queue := []item{{idx: start, out: &root}}
	seen := map[int]bool{start: true}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		for _, child := range f.nodes[cur.idx].children {
			if seen[child] || f.nodes[child].comment.Hidden {
				continue
			}
			seen[child] = true

			c := f.nodes[child].comment
			cur.out.Replies = append(cur.out.Replies, &c)
			queue = append(queue, item{idx: child, out: &c})
		}
	}

	return &root
}

// Closure returns the target and all of its descendants, hidden ones included, in
// depth-first order. The walk stops descending past the depth ceiling and never revisits
// a node; either event is logged and the partial result is returned.
func (f *Forest) Closure(target uuid.UUID) []uuid.UUID {
	start, ok := f.index[target]
	if !ok {
		return nil
	}

	type frame struct {
		idx   int
		depth int
	}

	visited := map[int]bool{start: true}
	stack := []frame{{idx: start, depth: 0}}
	result := make([]uuid.UUID, 0, 1)
	truncated := false

	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		result = append(result, f.nodes[cur.idx].comment.ID)

		children := f.nodes[cur.idx].children
		for k := len(children) - 1; k >= 0; k-- {
			child := children[k]
			if visited[child] {
				f.logger.Warn("comment cycle detected during closure",
					"target_id", target, "comment_id", f.nodes[child].comment.ID)
				truncated = true
				continue
			}
			if cur.depth+1 > f.maxDepth {
				if !truncated {
					f.logger.Warn("comment closure hit depth ceiling",
						"target_id", target, "max_depth", f.maxDepth)
				}
				truncated = true
				continue
			}
			visited[child] = true
			stack = append(stack, frame{idx: child, depth: cur.depth + 1})
		}
	}

	if truncated {
		observability.ClosureTruncations.Inc()
	}
	return result
}

// VisibleFlat lists every Visible comment in creation order, without Replies.
func (f *Forest) VisibleFlat() []domain.Comment {
	var picked []int
	queue := make([]int, 0, len(f.roots))
	for _, r := range f.roots {
		if !f.nodes[r].comment.Hidden {
			queue = append(queue, r)
		}
	}
	seen := make(map[int]bool, len(f.nodes))

	for len(queue) > 0 {
		i := queue[0]
		queue = queue[1:]
		if seen[i] {
			continue
		}
		seen[i] = true
		picked = append(picked, i)

		for _, child := range f.nodes[i].children {
			if !f.nodes[child].comment.Hidden {
				queue = append(queue, child)
			}
		}
	}

	sort.Ints(picked)
	out := make([]domain.Comment, 0, len(picked))
	for _, i := range picked {
		out = append(out, f.nodes[i].comment)
	}
	return out
}
