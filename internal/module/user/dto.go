package user

// UpdatePrivacyRequest represents the input for changing profile visibility.
type UpdatePrivacyRequest struct {
	IsPrivate *bool `json:"isPrivate" form:"isPrivate" binding:"required"`
}
