package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/teampulse/feedback-system/internal/core/ports"
)

// FeedbackHandler serves the manager and employee feedback endpoints. Role
// gates run before every method.
type FeedbackHandler struct {
	service ports.FeedbackService
}

func NewFeedbackHandler(service ports.FeedbackService) *FeedbackHandler {
	return &FeedbackHandler{service: service}
}

// Dashboard handles GET /dashboard.
//
// @Summary      Manager team dashboard
// @Tags         manager
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dashboardResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Router       /dashboard [get]
func (h *FeedbackHandler) Dashboard(c echo.Context) error {
	manager, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	members, err := h.service.TeamDashboard(c.Request().Context(), manager)
	if err != nil {
		return err
	}

	team := make([]teamMemberResponse, 0, len(members))
	for _, m := range members {
		team = append(team, toTeamMember(m))
	}
	return c.JSON(http.StatusOK, dashboardResponse{Team: team})
}

// EmployeeFeedback handles GET /feedback/:employee_id.
//
// @Summary      Feedback of one direct report
// @Tags         manager
// @Produce      json
// @Security     BearerAuth
// @Param        employee_id  path      int  true  "Employee id"
// @Success      200          {array}   feedbackResponse
// @Failure      400          {object}  errorResponse
// @Failure      401          {object}  errorResponse
// @Failure      403          {object}  errorResponse
// @Router       /feedback/{employee_id} [get]
func (h *FeedbackHandler) EmployeeFeedback(c echo.Context) error {
	manager, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	employeeID, err := pathID(c, "employee_id")
	if err != nil {
		return err
	}

	items, err := h.service.EmployeeFeedback(c.Request().Context(), manager, employeeID)
	if err != nil {
		return forbidden(err, "Not authorized to view this employee's feedback")
	}
	return c.JSON(http.StatusOK, toFeedbackList(items))
}

// Create handles POST /feedback.
//
// @Summary      Submit feedback for a direct report
// @Tags         manager
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createFeedbackRequest  true  "Feedback"
// @Success      201   {object}  createFeedbackResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /feedback [post]
func (h *FeedbackHandler) Create(c echo.Context) error {
	manager, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req createFeedbackRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	fb, err := h.service.CreateFeedback(c.Request().Context(), manager, toCreateFeedbackInput(req))
	if err != nil {
		return forbidden(err, "Not authorized to provide feedback to this employee")
	}

	return c.JSON(http.StatusCreated, createFeedbackResponse{
		Message:  "Feedback created successfully",
		Feedback: toFeedbackResponse(fb),
	})
}

// Timeline handles GET /employee-dashboard.
//
// @Summary      Employee feedback timeline
// @Tags         employee
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  timelineResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Router       /employee-dashboard [get]
func (h *FeedbackHandler) Timeline(c echo.Context) error {
	employee, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	entries, err := h.service.Timeline(c.Request().Context(), employee)
	if err != nil {
		return err
	}

	timeline := make([]timelineEntryResponse, 0, len(entries))
	for _, e := range entries {
		timeline = append(timeline, toTimelineEntry(e))
	}
	return c.JSON(http.StatusOK, timelineResponse{Timeline: timeline})
}

// Acknowledge handles POST /acknowledge/:feedback_id.
//
// @Summary      Acknowledge a feedback entry
// @Tags         employee
// @Produce      json
// @Security     BearerAuth
// @Param        feedback_id  path      int  true  "Feedback id"
// @Success      200          {object}  messageResponse
// @Failure      400          {object}  errorResponse
// @Failure      401          {object}  errorResponse
// @Failure      403          {object}  errorResponse
// @Router       /acknowledge/{feedback_id} [post]
func (h *FeedbackHandler) Acknowledge(c echo.Context) error {
	employee, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	feedbackID, err := pathID(c, "feedback_id")
	if err != nil {
		return err
	}

	if err := h.service.Acknowledge(c.Request().Context(), employee, feedbackID); err != nil {
		return forbidden(err, "Not authorized to acknowledge this feedback")
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Feedback acknowledged successfully"})
}
