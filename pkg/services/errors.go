package services

import (
	"errors"
	"strings"
)

// GraphError aggregates every graph-level violation found during
// validation. Graph errors are fatal to the run attempt: nothing
// executes.
type GraphError struct {
	Violations []error
}

func (e *GraphError) Error() string {
	messages := make([]string, 0, len(e.Violations))
	for _, violation := range e.Violations {
		messages = append(messages, violation.Error())
	}

	return "workflow graph failed validation: " + strings.Join(messages, "; ")
}

// Messages returns the human-readable violation list for display.
func (e *GraphError) Messages() []string {
	messages := make([]string, 0, len(e.Violations))
	for _, violation := range e.Violations {
		messages = append(messages, violation.Error())
	}

	return messages
}

func IsGraphError(err error) bool {
	var graphErr *GraphError

	return errors.As(err, &graphErr)
}

func AsGraphError(err error) (*GraphError, bool) {
	var graphErr *GraphError

	ok := errors.As(err, &graphErr)

	return graphErr, ok
}
