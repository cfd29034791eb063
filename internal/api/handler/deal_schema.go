package handler

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Request / Response types ---

type partyRequest struct {
	Name  string `json:"name"  validate:"required"`
	Email string `json:"email" validate:"omitempty,email"`
	Phone string `json:"phone"`
}

type createDealRequest struct {
	PropertyType    string       `json:"property_type"    validate:"required"`
	TransactionType string       `json:"transaction_type" validate:"required,oneof=sale rent"`
	Location        string       `json:"location"         validate:"required"`
	SizeSqm         float64      `json:"size_sqm"         validate:"required,gt=0"`
	Bedrooms        int          `json:"bedrooms"         validate:"gte=0"`
	Bathrooms       int          `json:"bathrooms"        validate:"gte=0"`
	Price           float64      `json:"price"            validate:"required,gt=0"`
	Currency        string       `json:"currency"         validate:"required"`
	Buyer           partyRequest `json:"buyer"            validate:"required"`
	Landlord        partyRequest `json:"landlord"         validate:"required"`
	Amenities       []string     `json:"amenities"`
	Description     string       `json:"description"`
}

type listDealsResponse struct {
	Items      any   `json:"items"`
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"total_pages"`
}
