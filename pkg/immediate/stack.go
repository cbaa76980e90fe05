package immediate

import "github.com/go-drift/immediate/pkg/errors"

// stack holds the containers open during one pass. It borrows nodes owned by
// the cache tree.
type stack struct {
	nodes []*node
}

func (s *stack) push(n *node) {
	s.nodes = append(s.nodes, n)
}

func (s *stack) pop() *node {
	if len(s.nodes) == 0 {
		return nil
	}
	n := s.nodes[len(s.nodes)-1]
	s.nodes[len(s.nodes)-1] = nil
	s.nodes = s.nodes[:len(s.nodes)-1]
	return n
}

func (s *stack) peek() *node {
	if len(s.nodes) == 0 {
		return nil
	}
	return s.nodes[len(s.nodes)-1]
}

func (s *stack) len() int {
	return len(s.nodes)
}

func (s *stack) contains(n *node) bool {
	for _, open := range s.nodes {
		if open == n {
			return true
		}
	}
	return false
}

// unwindTo closes every container above n, reporting each one as left open.
// It does nothing if n is no longer on the stack.
func (s *stack) unwindTo(n *node) {
	if !s.contains(n) {
		return
	}
	for s.peek() != n {
		s.forcePop(n.kind)
	}
}

// forcePop closes the top container on behalf of a closing container.
// KindNone stands for the end of the pass itself.
func (s *stack) forcePop(closing Kind) {
	open := s.pop()
	err := &errors.StructureError{Container: open.kind.String()}
	if closing != KindNone {
		err.Closing = closing.String()
	}
	errors.ReportStructure(err)
	open.endNested()
}
