package handler

import (
	"net/http"

	"github.com/mcoot/santaworkshop/internal/api/request"
	"github.com/mcoot/santaworkshop/internal/api/response"
	"github.com/mcoot/santaworkshop/internal/model"
	"github.com/mcoot/santaworkshop/internal/services/planner"
)

// PlannerHandler handles gift suggestion endpoints
type PlannerHandler struct {
	planner *planner.Service
}

// NewPlannerHandler creates a new planner handler
func NewPlannerHandler(planner *planner.Service) *PlannerHandler {
	return &PlannerHandler{planner: planner}
}

// Suggest handles POST /api/v1/planner/suggestions
func (h *PlannerHandler) Suggest(w http.ResponseWriter, r *http.Request) {
	var req request.PlanRequest
	if !decode(w, r, &req) {
		return
	}

	plan := planRequestToModel(req)
	result := h.planner.Plan(plan)

	response.JSON(w, http.StatusOK, response.PlanFromModel(result, planner.RatingLabel(plan.BehaviorScore)))
}

func planRequestToModel(req request.PlanRequest) model.PlanRequest {
	wishes := make([]model.WishListItem, len(req.WishList))
	for i, item := range req.WishList {
		wishes[i] = model.WishListItem{
			ID:             item.ID,
			Name:           item.Name,
			EstimatedPrice: planner.ParseAmount(item.Price),
		}
	}

	gender := model.Gender(req.Child.Gender)
	if gender == "" {
		gender = model.GenderOther
	}

	return model.PlanRequest{
		Child: model.ChildProfile{
			Name:      req.Child.Name,
			Age:       req.Child.Age,
			Gender:    gender,
			Interests: req.Child.Interests,
		},
		WishList:      wishes,
		BehaviorScore: req.BehaviorScore,
		Budget:        planner.ParseAmount(req.Budget),
	}
}
