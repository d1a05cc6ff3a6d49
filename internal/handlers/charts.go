package handlers

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/spcflow/spcflow/internal/logging"
	"github.com/spcflow/spcflow/internal/models"
	"github.com/spcflow/spcflow/internal/utils"
)

// Update runs one update cycle for a chart, creating the chart on first use.
func (h *Handler) Update(c *fiber.Ctx) error {
	chart := c.Params("chart")

	var req models.UpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "INVALID_BODY",
				Message: "Failed to parse request body: " + err.Error(),
			},
		})
	}

	ctx, cancel := context.WithTimeout(c.Context(), utils.UpdateCycleTimeout)
	defer cancel()

	o := h.registry.GetOrCreate(chart)
	result, err := o.Update(ctx, &req)
	if err != nil {
		return h.updateError(c, chart, err)
	}

	return c.JSON(models.UpdateResponse{
		Chart:           chart,
		State:           string(o.State()),
		Records:         result.View.Records,
		Limits:          result.Limits,
		Flags:           result.Outliers,
		DataChanged:     result.Flags.DataChanged,
		ResizeOnly:      result.Flags.ResizeOnly,
		LimitsComputed:  result.Flags.LimitsNeedRecalc,
		OutliersScanned: result.Flags.OutliersNeedRecalc,
		RenderStages:    result.Flags.Stages.List(),
		Warning:         result.Warnings,
	})
}

// View returns the retained render-ready view of a chart.
func (h *Handler) View(c *fiber.Ctx) error {
	chart := c.Params("chart")

	o, err := h.registry.Get(chart)
	if err != nil {
		return h.unknownChart(c, chart)
	}

	resp := models.ViewResponse{Chart: chart, Records: []models.ViewRecord{}}
	if view := o.View(); view != nil {
		resp.Records = view.Records
	}
	return c.JSON(resp)
}

// List returns the registered chart names.
func (h *Handler) List(c *fiber.Ctx) error {
	return c.JSON(models.ChartListResponse{
		Charts: h.registry.Names(),
	})
}

// Dispose removes a chart and all its retained state.
func (h *Handler) Dispose(c *fiber.Ctx) error {
	chart := c.Params("chart")

	if err := h.registry.Dispose(chart); err != nil {
		return h.unknownChart(c, chart)
	}
	h.logger.Info("Chart disposed", "chart", chart)
	return c.SendStatus(fiber.StatusNoContent)
}

// updateError maps cycle failures onto HTTP statuses: structural validation
// failures are the caller's fault, domain errors mark a broken configuration.
func (h *Handler) updateError(c *fiber.Ctx, chart string, err error) error {
	switch err.(type) {
	case *models.ValidationError:
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "VALIDATION_FAILED",
				Message: err.Error(),
			},
		})
	case *models.DomainError:
		return c.Status(fiber.StatusUnprocessableEntity).JSON(models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "UNKNOWN_SELECTOR",
				Message: err.Error(),
			},
		})
	default:
		logging.FromContext(c.UserContext()).Error("Update cycle failed", "chart", chart, "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "UPDATE_FAILED",
				Message: "Update cycle failed",
			},
		})
	}
}

func (h *Handler) unknownChart(c *fiber.Ctx, chart string) error {
	return c.Status(fiber.StatusNotFound).JSON(models.ErrorResponse{
		Error: models.ErrorDetail{
			Code:    "UNKNOWN_CHART",
			Message: "Chart not found: " + chart,
		},
	})
}
