package dto

// CreateTicketRequest payload; category and priority are assigned by the
// backend classifier, not the submitter.
type CreateTicketRequest struct {
	Title       string `json:"title" form:"title"`
	Description string `json:"description" form:"description"`
}

// PredictRequest asks the classifier for a suggestion on a draft.
type PredictRequest struct {
	Title       string `json:"title" form:"title"`
	Description string `json:"description" form:"description"`
}

// UpdateStatusRequest moves a ticket along its lifecycle.
type UpdateStatusRequest struct {
	Status string `json:"status" form:"status"`
}

// AdminTicketUpdateRequest edits category, priority and status at once.
type AdminTicketUpdateRequest struct {
	Category string `json:"category" form:"category"`
	Priority string `json:"priority" form:"priority"`
	Status   string `json:"status" form:"status"`
}
