package handler

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"droppoint-tracker/internal/features/droppoints/domain"
	geo "droppoint-tracker/internal/features/droppoints/geojson"
	"droppoint-tracker/internal/features/droppoints/ports"
	"droppoint-tracker/internal/features/droppoints/service"
)

// DropPointHandler handles HTTP requests for drop point operations.
type DropPointHandler struct {
	svc    ports.DropPointService
	engine *domain.PriorityEngine
}

// NewDropPointHandler creates a new DropPointHandler.
func NewDropPointHandler(svc ports.DropPointService, engine *domain.PriorityEngine) *DropPointHandler {
	return &DropPointHandler{
		svc:    svc,
		engine: engine,
	}
}

// ErrorResponse represents an error response with Ray ID.
type ErrorResponse struct {
	// Message is the error description.
	Message string `json:"message"`
	// Fields carries per-field validation failures, if any.
	Fields []domain.FieldError `json:"fields,omitempty"`
	// RayID is the unique request identifier for tracing.
	RayID string `json:"ray_id,omitempty"`
}

// CreateDropPointRequest is the body for creating a drop point.
type CreateDropPointRequest struct {
	Number      int        `json:"number"`
	Description string     `json:"description"`
	Lat         *float64   `json:"lat"`
	Lng         *float64   `json:"lng"`
	Level       *int       `json:"level"`
	Crates      *int       `json:"crates"`
	StartTime   *time.Time `json:"start_time"`
}

// ReportRequest is the body for logging a visitor report.
type ReportRequest struct {
	State string     `json:"state"`
	Time  *time.Time `json:"time"`
}

// VisitRequest is the body for logging a maintenance visit.
type VisitRequest struct {
	Action string     `json:"action"`
	Time   *time.Time `json:"time"`
}

// RelocateRequest is the body for appending a new location.
type RelocateRequest struct {
	Description string     `json:"description"`
	Lat         *float64   `json:"lat"`
	Lng         *float64   `json:"lng"`
	Level       *int       `json:"level"`
	StartTime   *time.Time `json:"start_time"`
}

// CapacityRequest is the body for appending a new crate count.
type CapacityRequest struct {
	Crates    *int       `json:"crates"`
	StartTime *time.Time `json:"start_time"`
}

// RemoveRequest is the optional body for removing a drop point.
type RemoveRequest struct {
	Time *time.Time `json:"time"`
}

// LocationResponse is the wire form of a drop point's current location.
type LocationResponse struct {
	Description string     `json:"description,omitempty"`
	Lat         *float64   `json:"lat,omitempty"`
	Lng         *float64   `json:"lng,omitempty"`
	Level       *int       `json:"level,omitempty"`
	Since       time.Time  `json:"since"`
}

// DropPointResponse is the wire form of a drop point with its derived
// values.
type DropPointResponse struct {
	Number       int               `json:"number"`
	Removed      bool              `json:"removed"`
	RemovedAt    *time.Time        `json:"removed_at,omitempty"`
	Location     *LocationResponse `json:"location,omitempty"`
	Crates       int               `json:"crates"`
	ReportsTotal int               `json:"reports_total"`
	ReportsNew   int               `json:"reports_new"`
	LastState    string            `json:"last_state"`
	Priority     float64           `json:"priority"`
}

func (h *DropPointHandler) toResponse(dp *domain.DropPoint) DropPointResponse {
	resp := DropPointResponse{
		Number:       dp.Number(),
		Removed:      dp.IsRemoved(),
		Crates:       dp.CurrentCrateCount(),
		ReportsTotal: dp.TotalReportCount(),
		ReportsNew:   dp.NewReportCount(),
		LastState:    string(dp.LastState()),
		Priority:     h.engine.Score(dp),
	}
	if at, ok := dp.RemovedAt(); ok {
		resp.RemovedAt = &at
	}
	if loc, ok := dp.CurrentLocation(); ok {
		lr := &LocationResponse{
			Description: loc.Description,
			Since:       loc.StartTime,
		}
		if loc.HasCoords {
			lat, lng := loc.Lat, loc.Lng
			lr.Lat, lr.Lng = &lat, &lng
		}
		if loc.HasLevel {
			level := loc.Level
			lr.Level = &level
		}
		resp.Location = lr
	}
	return resp
}

func rayID(c *fiber.Ctx) string {
	if id, ok := c.Locals("requestid").(string); ok {
		return id
	}
	return ""
}

// respondError maps domain and service errors onto HTTP statuses:
// validation failures are 400 with the aggregated field list, illegal state
// transitions are 409, unknown numbers are 404.
func (h *DropPointHandler) respondError(c *fiber.Ctx, err error) error {
	if verr, ok := domain.AsValidation(err); ok {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Message: "validation failed",
			Fields:  verr.Fields,
			RayID:   rayID(c),
		})
	}
	if serr, ok := domain.AsState(err); ok {
		return c.Status(fiber.StatusConflict).JSON(ErrorResponse{
			Message: serr.Message,
			RayID:   rayID(c),
		})
	}
	if errors.Is(err, service.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{
			Message: "drop point not found",
			RayID:   rayID(c),
		})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
		Message: err.Error(),
		RayID:   rayID(c),
	})
}

// number parses the :number path parameter. On failure it writes the 400
// response itself and reports false.
func (h *DropPointHandler) number(c *fiber.Ctx) (int, bool) {
	number, err := c.ParamsInt("number")
	if err != nil {
		_ = c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Message: "drop point number is not a number",
			RayID:   rayID(c),
		})
		return 0, false
	}
	return number, true
}

// Create handles POST /droppoints.
func (h *DropPointHandler) Create(c *fiber.Ctx) error {
	var req CreateDropPointRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Message: "invalid request body",
			RayID:   rayID(c),
		})
	}

	dp, err := h.svc.Create(c.Context(), domain.DropPointParams{
		Number:      req.Number,
		Description: req.Description,
		Lat:         req.Lat,
		Lng:         req.Lng,
		Level:       req.Level,
		Crates:      req.Crates,
		StartTime:   req.StartTime,
	})
	if err != nil {
		return h.respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(h.toResponse(dp))
}

// Get handles GET /droppoints/:number.
func (h *DropPointHandler) Get(c *fiber.Ctx) error {
	number, ok := h.number(c)
	if !ok {
		return nil
	}

	dp, err := h.svc.Get(c.Context(), number)
	if err != nil {
		return h.respondError(c, err)
	}
	return c.JSON(h.toResponse(dp))
}

// List handles GET /droppoints.
func (h *DropPointHandler) List(c *fiber.Ctx) error {
	points := h.svc.List(c.Context())
	out := make([]DropPointResponse, 0, len(points))
	for _, dp := range points {
		out = append(out, h.toResponse(dp))
	}
	return c.JSON(out)
}

// GeoJSON handles GET /droppoints.geojson.
func (h *DropPointHandler) GeoJSON(c *fiber.Ctx) error {
	fc := geo.FeatureCollection(h.svc.List(c.Context()), h.engine)
	return c.JSON(fc)
}

// Remove handles DELETE /droppoints/:number.
func (h *DropPointHandler) Remove(c *fiber.Ctx) error {
	number, ok := h.number(c)
	if !ok {
		return nil
	}

	var req RemoveRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
				Message: "invalid request body",
				RayID:   rayID(c),
			})
		}
	}

	if err := h.svc.Remove(c.Context(), number, req.Time); err != nil {
		return h.respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Report handles POST /droppoints/:number/reports.
func (h *DropPointHandler) Report(c *fiber.Ctx) error {
	number, ok := h.number(c)
	if !ok {
		return nil
	}

	var req ReportRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Message: "invalid request body",
			RayID:   rayID(c),
		})
	}

	if err := h.svc.Report(c.Context(), number, domain.ReportState(req.State), req.Time); err != nil {
		return h.respondError(c, err)
	}
	return c.SendStatus(fiber.StatusCreated)
}

// Visit handles POST /droppoints/:number/visits.
func (h *DropPointHandler) Visit(c *fiber.Ctx) error {
	number, ok := h.number(c)
	if !ok {
		return nil
	}

	var req VisitRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Message: "invalid request body",
			RayID:   rayID(c),
		})
	}

	if err := h.svc.LogVisit(c.Context(), number, domain.VisitAction(req.Action), req.Time); err != nil {
		return h.respondError(c, err)
	}
	return c.SendStatus(fiber.StatusCreated)
}

// Relocate handles POST /droppoints/:number/locations.
func (h *DropPointHandler) Relocate(c *fiber.Ctx) error {
	number, ok := h.number(c)
	if !ok {
		return nil
	}

	var req RelocateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Message: "invalid request body",
			RayID:   rayID(c),
		})
	}

	if err := h.svc.Relocate(c.Context(), number, domain.LocationParams{
		StartTime:   req.StartTime,
		Description: req.Description,
		Lat:         req.Lat,
		Lng:         req.Lng,
		Level:       req.Level,
	}); err != nil {
		return h.respondError(c, err)
	}
	return c.SendStatus(fiber.StatusCreated)
}

// ChangeCapacity handles POST /droppoints/:number/capacities.
func (h *DropPointHandler) ChangeCapacity(c *fiber.Ctx) error {
	number, ok := h.number(c)
	if !ok {
		return nil
	}

	var req CapacityRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Message: "invalid request body",
			RayID:   rayID(c),
		})
	}

	if err := h.svc.ChangeCapacity(c.Context(), number, domain.CapacityParams{
		StartTime: req.StartTime,
		Crates:    req.Crates,
	}); err != nil {
		return h.respondError(c, err)
	}
	return c.SendStatus(fiber.StatusCreated)
}
