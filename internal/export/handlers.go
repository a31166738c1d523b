package export

import (
	"bytes"
	"context"

	"backend-trailpace/internal/plan"
	"backend-trailpace/internal/race"

	"github.com/gofiber/fiber/v2"
)

// PlanBuilder is the slice of the route service the exporter needs.
type PlanBuilder interface {
	BuildPlan(ctx context.Context, routeID string) (plan.Plan, error)
}

// ComparisonLister is the slice of the analysis service the exporter needs.
type ComparisonLister interface {
	Comparisons(ctx context.Context, analysisID string) ([]race.Comparison, error)
}

func RegisterRoutes(r fiber.Router, plans PlanBuilder, analyses ComparisonLister, authMiddleware fiber.Handler) {
	r.Get("/routes/:id/plan.csv", authMiddleware, func(c *fiber.Ctx) error {
		p, err := plans.BuildPlan(c.Context(), c.Params("id"))
		if err != nil {
			return fiber.NewError(fiber.StatusNotFound, err.Error())
		}
		var buf bytes.Buffer
		if err := WritePlanCSV(&buf, p); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return sendCSV(c, "plan.csv", buf.Bytes())
	})

	r.Get("/analyses/:id/comparisons.csv", authMiddleware, func(c *fiber.Ctx) error {
		rows, err := analyses.Comparisons(c.Context(), c.Params("id"))
		if err != nil {
			return fiber.NewError(fiber.StatusNotFound, err.Error())
		}
		var buf bytes.Buffer
		if err := WriteComparisonsCSV(&buf, rows); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return sendCSV(c, "comparisons.csv", buf.Bytes())
	})
}

func sendCSV(c *fiber.Ctx, filename string, body []byte) error {
	c.Set(fiber.HeaderContentType, "text/csv")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(body)
}
