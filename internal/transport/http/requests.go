package http

type createUserRequest struct {
	Email     string `json:"email" validate:"required,email,max=255"`
	FirstName string `json:"first_name" validate:"required,min=1,max=100"`
	LastName  string `json:"last_name" validate:"required,min=1,max=100"`
	Phone     string `json:"phone" validate:"omitempty,max=32"`
	Role      string `json:"role" validate:"required,user_role"`
}

type createApartmentRequest struct {
	OwnerID       int64  `json:"owner_id" validate:"required,gt=0"`
	Title         string `json:"title" validate:"required,min=3,max=255"`
	Description   string `json:"description" validate:"max=5000"`
	Address       string `json:"address" validate:"required,max=500"`
	City          string `json:"city" validate:"required,max=100"`
	Rooms         int    `json:"rooms" validate:"gte=0"`
	MaxGuests     int    `json:"max_guests" validate:"gte=0"`
	PricePerNight int64  `json:"price_per_night" validate:"gte=0,lte=10000000000"`
}

type createBookingRequest struct {
	ApartmentID   int64  `json:"apartment_id" validate:"required,gt=0"`
	ClientID      int64  `json:"client_id" validate:"required,gt=0"`
	CheckIn       string `json:"check_in" validate:"required,iso_date"`
	CheckOut      string `json:"check_out" validate:"required,iso_date"`
	Guests        int    `json:"guests" validate:"required,min=1"`
	NonRefundable bool   `json:"non_refundable"`
}

type cancelBookingRequest struct {
	Reason string `json:"reason" validate:"max=500"`
}

type processPaymentRequest struct {
	Method string `json:"method" validate:"required,payment_method"`
}

// Score ranges are checked by the reputation service.
type submitRatingRequest struct {
	RaterID     int64  `json:"rater_id" validate:"required,gt=0"`
	RatedUserID int64  `json:"rated_user_id" validate:"required,gt=0"`
	Score       int    `json:"score"`
	Type        string `json:"rating_type" validate:"required,rating_type"`
	BookingID   *int64 `json:"booking_id" validate:"omitempty,gt=0"`
	Comment     string `json:"comment" validate:"max=2000"`
}

type submitReviewRequest struct {
	ApartmentID int64  `json:"apartment_id" validate:"required,gt=0"`
	ReviewerID  int64  `json:"reviewer_id" validate:"required,gt=0"`
	Rating      int    `json:"rating"`
	Comment     string `json:"comment" validate:"max=2000"`
	BookingID   *int64 `json:"booking_id" validate:"omitempty,gt=0"`
}
