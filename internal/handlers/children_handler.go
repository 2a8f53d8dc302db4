package handlers

import (
	"net/http"
	"strconv"
	"time"

	"treasurehunt/internal/service"
)

// ChildrenHandler serves child registration and profile endpoints
type ChildrenHandler struct {
	childService *service.ChildService
}

// NewChildrenHandler creates a new children handler
func NewChildrenHandler(childService *service.ChildService) *ChildrenHandler {
	return &ChildrenHandler{childService: childService}
}

// Register handles POST /children/register
func (h *ChildrenHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerChildRequest
	if err := decodeJSON(r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body", "", err)
		return
	}

	dateOfBirth, err := time.Parse("2006-01-02", req.DateOfBirth)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "date_of_birth must be YYYY-MM-DD", "", nil)
		return
	}

	child, generated, err := h.childService.Register(req.Name, dateOfBirth, req.Password, req.ParentAccountID, req.GeneratePassword)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, registerChildResponse{
		childResponse:     toChildResponse(child),
		GeneratedPassword: generated,
	})
}

// GetChild handles GET /children/{id}
func (h *ChildrenHandler) GetChild(w http.ResponseWriter, r *http.Request) {
	childID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	child, err := h.childService.GetChild(childID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, toChildResponse(child))
}

// GetTokens handles GET /children/{id}/tokens
func (h *ChildrenHandler) GetTokens(w http.ResponseWriter, r *http.Request) {
	childID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	tokens, err := h.childService.GetTokenBalance(childID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, tokensResponse{ChildID: childID, Tokens: tokens})
}

// ListCompletions handles GET /children/{id}/completions
func (h *ChildrenHandler) ListCompletions(w http.ResponseWriter, r *http.Request) {
	childID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	completions, err := h.childService.ListCompletions(childID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	items := make([]completionItem, 0, len(completions))
	for _, c := range completions {
		items = append(items, completionItem{
			ID:            c.ID,
			ActivityID:    c.ActivityID,
			ActivityTitle: c.ActivityTitle,
			Validated:     c.Validated,
			TokensAwarded: c.TokensAwarded,
			CompletedAt:   c.CreatedAt,
		})
	}

	respondJSON(w, http.StatusOK, completionListResponse{ChildID: childID, Completions: items})
}

// RegeneratePassword handles POST /children/{id}/regenerate-password
func (h *ChildrenHandler) RegeneratePassword(w http.ResponseWriter, r *http.Request) {
	childID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	password, err := h.childService.RegeneratePassword(childID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, regeneratePasswordResponse{ChildID: childID, Password: password})
}

// pathID parses a numeric path parameter, responding 400 on garbage
func pathID(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue(name), 10, 64)
	if err != nil || id < 1 {
		respondWithError(w, http.StatusBadRequest, "Invalid "+name, "", nil)
		return 0, false
	}
	return id, true
}
