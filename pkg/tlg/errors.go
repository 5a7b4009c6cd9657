package tlg

import (
	"errors"
	"fmt"

	"github.com/dd0wney/cluso-graphsim/pkg/graph"
)

var (
	// ErrFormat reports input that does not follow the encoding.
	ErrFormat = errors.New("malformed graph file")

	// ErrMissingLabel and ErrDuplicateLabel are returned by the GML reader
	// when labels are requested as node ids. Both are domain errors:
	// errors.Is(err, graph.ErrDomain) holds.
	ErrMissingLabel   = errors.New("node has no label")
	ErrDuplicateLabel = errors.New("duplicate node label")
)

func formatError(op string, line int, msg string) error {
	return graph.NewError(op).
		Context(fmt.Sprintf("line %d", line)).
		Cause(fmt.Errorf("%w: %s", ErrFormat, msg)).
		Err()
}

func lineError(op string, line int, id string, cause error) error {
	return graph.NewError(op).
		Node(id).
		Context(fmt.Sprintf("line %d", line)).
		Cause(cause).
		Err()
}

func labelError(line int, id string, cause error) error {
	return graph.DomainError("ReadGML", fmt.Errorf("line %d, node %q: %w", line, id, cause))
}
