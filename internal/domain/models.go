package domain

// Booking status values. Transitions run pending -> approved|rejected,
// approved -> completed; only the booking's sitter moves them.
const (
	BookingPending   = "pending"
	BookingApproved  = "approved"
	BookingRejected  = "rejected"
	BookingCompleted = "completed"
)

// Order status values. A row with status=cart is a live cart line; checkout
// moves cart rows to pending. The direct-purchase path creates ordered rows.
const (
	OrderCart      = "cart"
	OrderPending   = "pending"
	OrderOrdered   = "ordered"
	OrderShipped   = "shipped"
	OrderDelivered = "delivered"
	OrderCanceled  = "canceled"
)

// Sitter verification states, set only by admin action.
const (
	VerifyPending  = "pending"
	VerifyApproved = "approved"
	VerifyRejected = "rejected"
)

type Pet struct {
	ID             string `db:"id"`
	OwnerID        string `db:"owner_id"`
	Name           string `db:"name"`
	Species        string `db:"species"` // Dog | Cat | Bird | Other
	Breed          string `db:"breed"`
	Age            int    `db:"age"`
	MedicalHistory string `db:"medical_history"`
	Image          string `db:"image"`
	CreatedAt      string `db:"created_at"`
}

type Sitter struct {
	ID           string `db:"id"` // same value as the sitter's user id
	Name         string `db:"name"`
	Email        string `db:"email"`
	Phone        string `db:"phone"`
	ServiceTypes string `db:"service_types_json"`
	Verification string `db:"verification_status"`
	ProfileImage string `db:"profile_image"`
	IDDocument   string `db:"id_document"`
	SelfieWithID string `db:"selfie_with_id"`
	CreatedAt    string `db:"created_at"`
}

// Availability is a sitter-published slot. Times are stored as
// "2006-01-02" / "15:04" text so lexicographic order matches chronology.
type Availability struct {
	ID        string `db:"id"`
	SitterID  string `db:"sitter_id"`
	Date      string `db:"date"`
	StartTime string `db:"start_time"`
	EndTime   string `db:"end_time"`
	Notes     string `db:"notes"`
}

type Booking struct {
	ID             string `db:"id"`
	PetID          string `db:"pet_id"`
	SitterID       string `db:"sitter_id"`
	AvailabilityID string `db:"availability_id"`
	StartAt        string `db:"start_at"` // "2006-01-02 15:04"
	EndAt          string `db:"end_at"`
	Status         string `db:"status"`
	CreatedAt      string `db:"created_at"`
}

type Product struct {
	ID          string  `db:"id"`
	SellerID    string  `db:"seller_id"`
	Name        string  `db:"name"`
	Description string  `db:"description"`
	Price       float64 `db:"price"`
	Stock       int     `db:"stock"`
	Image       string  `db:"image"`
	SalesCount  int     `db:"sales_count"`
	CreatedAt   string  `db:"created_at"`
}

type Order struct {
	ID         string  `db:"id"`
	BuyerID    string  `db:"buyer_id"`
	ProductID  string  `db:"product_id"`
	Quantity   int     `db:"quantity"`
	TotalPrice float64 `db:"total_price"`
	Status     string  `db:"status"`
	OrderedAt  string  `db:"ordered_at"`
	CreatedAt  string  `db:"created_at"`
}

type Campaign struct {
	ID          string  `db:"id"`
	SellerID    string  `db:"seller_id"`
	Name        string  `db:"name"`
	Discount    float64 `db:"discount"`
	Description string  `db:"description"`
	StartDate   string  `db:"start_date"`
	EndDate     string  `db:"end_date"`
	Active      bool    `db:"active"`
	CreatedAt   string  `db:"created_at"`
}

type SitterReview struct {
	ID        string `db:"id"`
	SitterID  string `db:"sitter_id"`
	OwnerID   string `db:"owner_id"`
	OwnerName string `db:"owner_name"`
	Rating    int    `db:"rating"`
	Text      string `db:"review_text"`
	CreatedAt string `db:"created_at"`
}

type ProductReview struct {
	ID        string `db:"id"`
	ProductID string `db:"product_id"`
	UserID    string `db:"user_id"`
	Rating    int    `db:"rating"`
	Text      string `db:"review_text"`
	CreatedAt string `db:"created_at"`
}

type PricingRule struct {
	ID           string  `db:"id"`
	SitterID     string  `db:"sitter_id"`
	ServiceName  string  `db:"service_name"`
	PetSize      string  `db:"pet_size"`
	Duration     int     `db:"duration"`
	SpecialNeeds string  `db:"special_needs"`
	Price        float64 `db:"price"`
}

type LostPet struct {
	ID          string  `db:"id"`
	OwnerID     string  `db:"owner_id"`
	Name        string  `db:"name"`
	Type        string  `db:"type"`
	Breed       string  `db:"breed"`
	Color       string  `db:"color"`
	LastSeen    string  `db:"last_seen"`
	Description string  `db:"description"`
	Status      string  `db:"status"` // Lost | Found
	Reward      float64 `db:"reward"`
	Image       string  `db:"image"`
	CreatedAt   string  `db:"created_at"`
}

type Sighting struct {
	ID          string `db:"id"`
	LostPetID   string `db:"lost_pet_id"`
	OwnerID     string `db:"owner_id"`
	HelperName  string `db:"helper_name"`
	HelperPhone string `db:"helper_phone"`
	Confidence  int    `db:"confidence"`
	Details     string `db:"details"`
	Location    string `db:"location"`
	Status      string `db:"status"` // Pending | Reviewed
	CreatedAt   string `db:"created_at"`
}

type Playdate struct {
	ID             string `db:"id"`
	OwnerID        string `db:"owner_id"`
	PetID          string `db:"pet_id"`
	InviteeOwnerID string `db:"invitee_owner_id"`
	InviteePetID   string `db:"invitee_pet_id"`
	Date           string `db:"date"`
	Time           string `db:"time"`
	Location       string `db:"location"`
	Status         string `db:"status"` // Pending | Accepted | Declined
	CreatedAt      string `db:"created_at"`
}
