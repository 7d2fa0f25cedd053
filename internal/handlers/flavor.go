package handlers

import "github.com/google/uuid"

// FlavorRequest is the JSON body for creating or updating a flavor.
type FlavorRequest struct {
	Name       string `json:"name" validate:"required"`
	IsFavorite bool   `json:"is_favorite"`
}

func flavorCreateFields(req FlavorRequest) map[string]any {
	return map[string]any{
		"id":          uuid.New(),
		"name":        req.Name,
		"is_favorite": req.IsFavorite,
	}
}

func flavorUpdateFields(req FlavorRequest) map[string]any {
	return map[string]any{
		"name":        req.Name,
		"is_favorite": req.IsFavorite,
	}
}
