package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"sallyo/internal/models/request_models"
	"sallyo/internal/models/response_models"
	"sallyo/internal/onboarding"
	"sallyo/internal/services"
	"sallyo/pkg/middleware"
	"sallyo/pkg/utils"
)

type OnboardingController struct {
	onboardingService services.OnboardingServiceInterface
}

func NewOnboardingController(onboardingService services.OnboardingServiceInterface) *OnboardingController {
	return &OnboardingController{
		onboardingService: onboardingService,
	}
}

// ListSteps godoc
// @Summary Wizard steps
// @Description Step catalogue with the fields and options of each step
// @Tags Onboarding
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Router /onboarding/steps [get]
func (o *OnboardingController) ListSteps(c *gin.Context) {
	utils.RespondSuccess(c, o.onboardingService.Steps(), "Fetched steps successfully")
}

// StartSession godoc
// @Summary Start the preference wizard
// @Tags Onboarding
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /onboarding/sessions [post]
func (o *OnboardingController) StartSession(c *gin.Context) {
	resp, err := o.onboardingService.Start(c.Request.Context(), middleware.AccountID(c))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, resp, "Onboarding started")
}

// GetSession godoc
// @Summary Wizard session snapshot
// @Tags Onboarding
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Security BearerAuth
// @Router /onboarding/sessions/{id} [get]
func (o *OnboardingController) GetSession(c *gin.Context) {
	resp, err := o.onboardingService.Get(c.Request.Context(), middleware.AccountID(c), c.Param("id"))
	o.respond(c, resp, err, "Fetched session successfully")
}

// Toggle godoc
// @Summary Toggle a tag in a set-valued field
// @Tags Onboarding
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param request body request_models.ToggleRequest true "Field and option id"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Security BearerAuth
// @Router /onboarding/sessions/{id}/toggle [post]
func (o *OnboardingController) Toggle(c *gin.Context) {
	var req request_models.ToggleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	resp, err := o.onboardingService.Toggle(c.Request.Context(), middleware.AccountID(c), c.Param("id"), req.Field, req.Value)
	o.respond(c, resp, err, "Selection updated")
}

// Select godoc
// @Summary Set a single-valued field
// @Tags Onboarding
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param request body request_models.SelectRequest true "Field and value"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Security BearerAuth
// @Router /onboarding/sessions/{id}/select [post]
func (o *OnboardingController) Select(c *gin.Context) {
	var req request_models.SelectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	resp, err := o.onboardingService.Select(c.Request.Context(), middleware.AccountID(c), c.Param("id"), req.Field, req.Value)
	o.respond(c, resp, err, "Selection updated")
}

// IncrementGuests godoc
// @Summary Add a guest
// @Tags Onboarding
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /onboarding/sessions/{id}/guests/increment [post]
func (o *OnboardingController) IncrementGuests(c *gin.Context) {
	resp, err := o.onboardingService.IncrementGuests(c.Request.Context(), middleware.AccountID(c), c.Param("id"))
	o.respond(c, resp, err, "Guest count updated")
}

// DecrementGuests godoc
// @Summary Remove a guest
// @Description Never goes below one guest.
// @Tags Onboarding
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /onboarding/sessions/{id}/guests/decrement [post]
func (o *OnboardingController) DecrementGuests(c *gin.Context) {
	resp, err := o.onboardingService.DecrementGuests(c.Request.Context(), middleware.AccountID(c), c.Param("id"))
	o.respond(c, resp, err, "Guest count updated")
}

// Advance godoc
// @Summary Next step
// @Description Moves forward when the current step is complete; on the last step saves the preferences.
// @Tags Onboarding
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /onboarding/sessions/{id}/advance [post]
func (o *OnboardingController) Advance(c *gin.Context) {
	resp, err := o.onboardingService.Advance(c.Request.Context(), middleware.AccountID(c), c.Param("id"))
	o.respond(c, resp, err, outcomeMessage(resp.Outcome))
}

// Retreat godoc
// @Summary Previous step
// @Description Goes back one step; from the first step leaves the wizard.
// @Tags Onboarding
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /onboarding/sessions/{id}/retreat [post]
func (o *OnboardingController) Retreat(c *gin.Context) {
	resp, err := o.onboardingService.Retreat(c.Request.Context(), middleware.AccountID(c), c.Param("id"))
	o.respond(c, resp, err, outcomeMessage(resp.Outcome))
}

// GetPreferences godoc
// @Summary Saved preferences
// @Tags Onboarding
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Security BearerAuth
// @Router /onboarding/preferences [get]
func (o *OnboardingController) GetPreferences(c *gin.Context) {
	resp, err := o.onboardingService.GetPreferences(c.Request.Context(), middleware.AccountID(c))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, resp, "Fetched preferences successfully")
}

func (o *OnboardingController) respond(c *gin.Context, resp response_models.SessionResponse, err error, message string) {
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, resp, message)
}

func outcomeMessage(outcome onboarding.Outcome) string {
	switch outcome {
	case onboarding.OutcomeBlocked:
		return "Complete this step to continue"
	case onboarding.OutcomeFinalized:
		return "Preferences saved"
	case onboarding.OutcomeExited:
		return "Left onboarding"
	}
	return "Step changed"
}
