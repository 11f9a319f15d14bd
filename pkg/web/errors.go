package web

import (
	"github.com/gofiber/fiber/v3"
	"github.com/moogar0880/problems"
	"github.com/veildoc/veilflow/pkg/persistence"
	"github.com/veildoc/veilflow/pkg/services"
)

func badRequest(c fiber.Ctx, detail string) error {
	problem := problems.NewStatusProblem(400).
		WithInstance(c.Path()).
		WithType("validation_error").
		WithDetail(detail)

	return c.Status(fiber.StatusBadRequest).JSON(problem)
}

func notFound(c fiber.Ctx, detail string) error {
	problem := problems.NewStatusProblem(404).
		WithInstance(c.Path()).
		WithType("not_found").
		WithDetail(detail)

	return c.Status(fiber.StatusNotFound).JSON(problem)
}

func internalError(c fiber.Ctx, err error) error {
	problem := problems.NewStatusProblem(500).
		WithInstance(c.Path()).
		WithType("internal_error").
		WithError(err)

	return c.Status(fiber.StatusInternalServerError).JSON(problem)
}

// graphProblem carries the individual graph violations alongside the
// standard problem fields.
type graphProblem struct {
	*problems.Problem
	Violations []string `json:"violations"`
}

// handleServiceError provides typed error handling for run service errors.
func handleServiceError(c fiber.Ctx, err error) error {
	switch {
	case services.IsGraphError(err):
		graphErr, _ := services.AsGraphError(err)
		problem := problems.NewStatusProblem(422).
			WithInstance(c.Path()).
			WithType("graph_invalid").
			WithDetail("workflow graph failed validation")

		return c.Status(fiber.StatusUnprocessableEntity).JSON(graphProblem{
			Problem:    problem,
			Violations: graphErr.Messages(),
		})

	case persistence.IsRunNotFound(err):
		problem := problems.NewStatusProblem(404).
			WithInstance(c.Path()).
			WithType("run_not_found").
			WithDetail("run not found")

		return c.Status(fiber.StatusNotFound).JSON(problem)

	default:
		problem := problems.NewStatusProblem(500).
			WithInstance(c.Path()).
			WithType("internal_error").
			WithError(err)

		return c.Status(fiber.StatusInternalServerError).JSON(problem)
	}
}
