package dto

type CreateClassRequest struct {
	Name        string `json:"name" validate:"required,max=100"`
	Description string `json:"description"`
}

type CreateClassResponse struct {
	Status  string `json:"status"`
	ClassID string `json:"class_id"`
}

type ClassMembershipRequest struct {
	ClassID string `json:"class_id" validate:"required"`
}

// ClassMemberResponse is one roster entry. Presence and photo are static
// placeholders; there is no presence tracking in the backend.
type ClassMemberResponse struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Status string `json:"status"`
	Photo  string `json:"photo"`
}
