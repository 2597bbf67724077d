package room

// Writable room fields are an explicit allow-list; reads expose the full
// entity but create/update never accept anything else.

type CreateRoomRequest struct {
	RoomNumber    string  `json:"room_number" binding:"required"`
	RoomType      string  `json:"room_type" binding:"required"`
	PricePerNight float64 `json:"price_per_night" binding:"required,gt=0"`
	Capacity      int     `json:"capacity" binding:"required,gt=0"`
	IsAvailable   *bool   `json:"is_available"`
}

type UpdateRoomRequest struct {
	RoomNumber    string  `json:"room_number" binding:"required"`
	RoomType      string  `json:"room_type" binding:"required"`
	PricePerNight float64 `json:"price_per_night" binding:"required,gt=0"`
	Capacity      int     `json:"capacity" binding:"required,gt=0"`
	IsAvailable   *bool   `json:"is_available"`
}

type PatchRoomRequest struct {
	RoomNumber    *string  `json:"room_number"`
	RoomType      *string  `json:"room_type"`
	PricePerNight *float64 `json:"price_per_night"`
	Capacity      *int     `json:"capacity"`
	IsAvailable   *bool    `json:"is_available"`
}

type AvailabilityRequest struct {
	IsAvailable *bool `json:"is_available" binding:"required"`
}
