package dto

// MessageResponse is the generic {"message": ...} acknowledgement body.
type MessageResponse struct {
	Message string `json:"message"`
}

// IDResponse acknowledges a create with the new row id.
type IDResponse struct {
	Message string `json:"message"`
	ID      int64  `json:"id"`
}
