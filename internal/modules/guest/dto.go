package guest

type CreateProfileRequest struct {
	// UserID is honoured for staff only; everyone else creates their own
	// profile.
	UserID  int64  `json:"user_id"`
	PhoneNo string `json:"phoneno" binding:"required"`
	Address string `json:"address" binding:"required"`
}

type UpdateProfileRequest struct {
	PhoneNo string `json:"phoneno" binding:"required"`
	Address string `json:"address" binding:"required"`
}
