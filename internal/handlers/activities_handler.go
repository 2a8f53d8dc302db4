package handlers

import (
	"io"
	"net/http"
	"strconv"

	"treasurehunt/internal/models"
	"treasurehunt/internal/service"
)

// ActivitiesHandler serves the activity catalog and photo submission endpoints
type ActivitiesHandler struct {
	activityService   *service.ActivityService
	completionService *service.CompletionService
	uploadMaxSize     int64
}

// NewActivitiesHandler creates a new activities handler
func NewActivitiesHandler(activityService *service.ActivityService, completionService *service.CompletionService, uploadMaxSize int64) *ActivitiesHandler {
	return &ActivitiesHandler{
		activityService:   activityService,
		completionService: completionService,
		uploadMaxSize:     uploadMaxSize,
	}
}

// List handles GET /activities with optional category and age filters
func (h *ActivitiesHandler) List(w http.ResponseWriter, r *http.Request) {
	category := models.Category(r.URL.Query().Get("category"))

	age := 0
	if ageParam := r.URL.Query().Get("age"); ageParam != "" {
		parsed, err := strconv.Atoi(ageParam)
		if err != nil || parsed < 1 {
			respondWithError(w, http.StatusBadRequest, "Invalid age", "", nil)
			return
		}
		age = parsed
	}

	activities, err := h.activityService.ListActivities(category, age)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	responses := make([]activityResponse, 0, len(activities))
	for i := range activities {
		responses = append(responses, toActivityResponse(&activities[i]))
	}
	respondJSON(w, http.StatusOK, responses)
}

// Get handles GET /activities/{id}
func (h *ActivitiesHandler) Get(w http.ResponseWriter, r *http.Request) {
	activityID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	activity, err := h.activityService.GetActivity(activityID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, toActivityResponse(activity))
}

// Create handles POST /activities
func (h *ActivitiesHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createActivityRequest
	if err := decodeJSON(r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body", "", err)
		return
	}

	activity, err := h.activityService.CreateActivity(&models.Activity{
		Title:        req.Title,
		Description:  req.Description,
		Category:     models.Category(req.Category),
		AgeMin:       req.AgeMin,
		AgeMax:       req.AgeMax,
		Location:     req.Location,
		TokensReward: req.TokensReward,
		Rubric:       req.Rubric,
	})
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, toActivityResponse(activity))
}

// Generate handles POST /activities/generate
func (h *ActivitiesHandler) Generate(w http.ResponseWriter, r *http.Request) {
	var req generateActivitiesRequest
	if err := decodeJSON(r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body", "", err)
		return
	}

	activities, err := h.activityService.GenerateActivities(r.Context(), service.GenerateRequest{
		Category: models.Category(req.Category),
		AgeMin:   req.AgeMin,
		AgeMax:   req.AgeMax,
		Location: req.Location,
		Count:    req.Count,
	})
	if err != nil {
		respondServiceError(w, err)
		return
	}

	responses := make([]activityResponse, 0, len(activities))
	for i := range activities {
		responses = append(responses, toActivityResponse(&activities[i]))
	}
	respondJSON(w, http.StatusCreated, responses)
}

// Complete handles POST /activities/{id}/complete. The request is a multipart
// form with a child_id field and a photo file; the response is the pipeline's
// completion outcome.
func (h *ActivitiesHandler) Complete(w http.ResponseWriter, r *http.Request) {
	activityID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.uploadMaxSize)
	if err := r.ParseMultipartForm(h.uploadMaxSize); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid upload (too large or not multipart)", "", err)
		return
	}

	childID, err := strconv.ParseInt(r.FormValue("child_id"), 10, 64)
	if err != nil || childID < 1 {
		respondWithError(w, http.StatusBadRequest, "Invalid child_id", "", nil)
		return
	}

	file, _, err := r.FormFile("photo")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Photo file is required", "", err)
		return
	}
	defer file.Close()

	photo, err := io.ReadAll(file)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Could not read photo", "", err)
		return
	}

	result, err := h.completionService.Submit(r.Context(), childID, activityID, photo)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, completionOutcomeResponse{
		CompletionID:  result.CompletionID,
		State:         string(result.State),
		Validated:     result.Validated,
		Reasoning:     result.Reasoning,
		TokensAwarded: result.TokensAwarded,
	})
}
