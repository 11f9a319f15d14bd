// Package web provides HTTP handlers and REST API endpoints for running
// and inspecting workflows.
package web

import (
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
	"github.com/veildoc/veilflow/pkg/persistence"
	"github.com/veildoc/veilflow/pkg/registry"
	"github.com/veildoc/veilflow/pkg/services"
	"github.com/veildoc/veilflow/pkg/templates"
)

type APIHandlers struct {
	runner    *services.Runner
	store     persistence.RunStore
	validator *validator.Validate
	registry  *registry.Registry
}

func NewAPIHandlers(
	runner *services.Runner,
	store persistence.RunStore,
	validator *validator.Validate,
	registry *registry.Registry,
) *APIHandlers {
	return &APIHandlers{
		runner:    runner,
		store:     store,
		validator: validator,
		registry:  registry,
	}
}

// GetCapabilities returns the full capability catalog, including port
// and parameter schemas, grouped for display by the caller.
func (h *APIHandlers) GetCapabilities(c fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"capabilities": h.registry.Catalog(),
	})
}

// GetTemplates returns the canned workflow graphs.
func (h *APIHandlers) GetTemplates(c fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"templates": templates.Catalog(),
	})
}

func (h *APIHandlers) GetTemplate(c fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return badRequest(c, "Template ID is required")
	}

	template, ok := templates.Lookup(id)
	if !ok {
		return notFound(c, "Template not found")
	}

	return c.JSON(template)
}

// ValidateWorkflow reports every graph-level violation without
// executing anything.
func (h *APIHandlers) ValidateWorkflow(c fiber.Ctx) error {
	var req WorkflowRequest
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "Invalid JSON format")
	}

	if err := h.validator.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}

	violations := h.runner.Validate(req.Nodes, req.Edges)
	violations = append(violations, h.runner.ValidateParams(req.Nodes)...)

	response := ValidationResponse{
		Valid:      len(violations) == 0,
		Violations: make([]string, 0, len(violations)),
	}

	for _, violation := range violations {
		response.Violations = append(response.Violations, violation.Error())
	}

	return c.JSON(response)
}

// RunWorkflow validates and executes a workflow snapshot, returning the
// persisted run record. Node failures do not fail the request: the run
// record carries per-node outcomes.
func (h *APIHandlers) RunWorkflow(c fiber.Ctx) error {
	var req WorkflowRequest
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "Invalid JSON format")
	}

	if err := h.validator.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}

	run, err := h.runner.Run(c.Context(), req.toWorkflow())
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(run)
}

func (h *APIHandlers) GetRuns(c fiber.Ctx) error {
	runs, err := h.store.ListRuns(c.Context(), c.Query("workflow_id"))
	if err != nil {
		return internalError(c, err)
	}

	if runs == nil {
		runs = []*persistence.StoredRun{}
	}

	return c.JSON(fiber.Map{
		"runs": runs,
	})
}

func (h *APIHandlers) GetRun(c fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return badRequest(c, "Run ID is required")
	}

	run, err := h.store.RunByID(c.Context(), id)
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(run)
}

func (h *APIHandlers) HealthCheck(c fiber.Ctx) error {
	registryCheck, regOk := h.registry.HealthCheck()

	storeErr := h.store.HealthCheck(c.Context())
	storeCheck := "ok"

	if storeErr != nil {
		storeCheck = storeErr.Error()
	}

	status := "unhealthy"
	message := "VeilFlow API is unhealthy"
	httpStatus := http.StatusInternalServerError

	if regOk && storeErr == nil {
		status = "healthy"
		message = "VeilFlow API is healthy"
		httpStatus = http.StatusOK
	}

	return c.Status(httpStatus).JSON(fiber.Map{
		"status":  status,
		"message": message,
		"checkers": fiber.Map{
			"registry": registryCheck,
			"runs":     storeCheck,
		},
		"timestamp": time.Now().UTC(),
	})
}
