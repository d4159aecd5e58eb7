package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/iksnae/support-analytics/internal"
)

func (s *Server) handleHealth(c *fiber.Ctx) error {
	return c.JSON(ResponseData{
		Status:  fiber.StatusOK,
		Code:    "SUCCESS",
		Message: "Service healthy",
		Results: fiber.Map{"source": s.svc.SourceName()},
	})
}

func (s *Server) handleDashboard(c *fiber.Ctx) error {
	return s.respond(c, "Dashboard retrieved", func(d *internal.Dashboard) interface{} {
		return d
	})
}

func (s *Server) handleStats(c *fiber.Ctx) error {
	return s.respond(c, "Stats retrieved", func(d *internal.Dashboard) interface{} {
		return d.Stats
	})
}

func (s *Server) handleCategories(c *fiber.Ctx) error {
	return s.respond(c, "Categories retrieved", func(d *internal.Dashboard) interface{} {
		return d.Categories
	})
}

func (s *Server) handleSentiments(c *fiber.Ctx) error {
	return s.respond(c, "Sentiments retrieved", func(d *internal.Dashboard) interface{} {
		return d.Sentiments
	})
}

func (s *Server) handleIssues(c *fiber.Ctx) error {
	return s.respond(c, "Issues retrieved", func(d *internal.Dashboard) interface{} {
		return d.Issues
	})
}

// respond loads a dashboard for the request's status filter and answers with
// the part selected by pick. A failed load answers 503, carrying the
// last-good data when there is any.
func (s *Server) respond(c *fiber.Ctx, message string, pick func(d *internal.Dashboard) interface{}) error {
	filter, err := internal.ParseStatusFilter(c.Query("status"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	d, err := s.svc.Dashboard(c.UserContext(), filter)
	if err != nil {
		resp := ResponseData{
			Status:  fiber.StatusServiceUnavailable,
			Code:    "FETCH_FAILED",
			Message: err.Error(),
		}
		if d != nil && d.Stale {
			resp.Code = "STALE"
			resp.Results = pick(d)
		}
		return c.Status(fiber.StatusServiceUnavailable).JSON(resp)
	}

	return c.JSON(ResponseData{
		Status:  fiber.StatusOK,
		Code:    "SUCCESS",
		Message: message,
		Results: pick(d),
	})
}
