package entities

import "time"

// RegisterEstablishmentInput is the self service sign up payload
type RegisterEstablishmentInput struct {
	Name       string `json:"name" binding:"required,max=120"`
	Slug       string `json:"slug" binding:"required,max=60"`
	OwnerEmail string `json:"owner_email" binding:"required,email"`
	OwnerPhone string `json:"owner_phone" binding:"omitempty,max=20"`
	Password   string `json:"password" binding:"required,min=6,max=72"`
}

// OwnerLoginInput authenticates an establishment owner
type OwnerLoginInput struct {
	Slug     string `json:"slug" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// SuperadminLoginInput authenticates the platform operator
type SuperadminLoginInput struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// OwnerSession is returned after a successful owner login
type OwnerSession struct {
	Token         string              `json:"token"`
	ExpiresAt     time.Time           `json:"expires_at"`
	Establishment PublicEstablishment `json:"establishment"`
}

// CreateOrderInput is what a customer submits from the menu
type CreateOrderInput struct {
	CustomerName   string    `json:"customer_name" binding:"required,max=120"`
	CustomerPhone  string    `json:"customer_phone" binding:"max=20"`
	Address        string    `json:"address" binding:"max=255"`
	NeighborhoodID *int64    `json:"neighborhood_id"`
	Total          float64   `json:"total" binding:"gte=0"`
	PaymentMethod  string    `json:"payment_method" binding:"max=60"`
	Type           OrderType `json:"type" binding:"required"`
	ItemsText      string    `json:"items_text" binding:"required"`
}

// CreateReservationInput books a table
type CreateReservationInput struct {
	CustomerName    string    `json:"customer_name" binding:"required,max=120"`
	CustomerPhone   string    `json:"customer_phone" binding:"max=20"`
	TableID         *int64    `json:"table_id"`
	ReservationTime time.Time `json:"reservation_time" binding:"required"`
	Guests          *int      `json:"guests"`
	Status          string    `json:"status"`
}

// ExternalOrderInput is posted by the storefront that sells premium plans
type ExternalOrderInput struct {
	APIKey     string  `json:"api_key"`
	StoreName  string  `json:"store_name" binding:"required,max=120"`
	OwnerName  string  `json:"owner_name"`
	OwnerEmail string  `json:"owner_email" binding:"omitempty,email"`
	OwnerPhone string  `json:"owner_phone"`
	Months     int     `json:"months"`
	OrderID    string  `json:"order_id"`
	Amount     float64 `json:"amount"`
}

// ExternalOrderResult tells the storefront what happened
type ExternalOrderResult struct {
	EstablishmentID int64     `json:"establishment_id"`
	Slug            string    `json:"slug"`
	Created         bool      `json:"created"`
	PaidUntil       time.Time `json:"paid_until"`
}

// PaymentWebhookInput is posted by the payment provider
type PaymentWebhookInput struct {
	APIKey    string  `json:"api_key"`
	Slug      string  `json:"slug" binding:"required"`
	Months    int     `json:"months"`
	Status    string  `json:"status" binding:"required"`
	Amount    float64 `json:"amount"`
	Reference string  `json:"reference"`
}

// PaymentStatusApproved is the only payment status that renews a subscription
const PaymentStatusApproved = "approved"

// UpgradeRequestInput asks for a paid plan
type UpgradeRequestInput struct {
	PlanCode string `json:"plan_code"`
	Months   int    `json:"months"`
}

// RenewInput extends the paid period
type RenewInput struct {
	Months int `json:"months"`
}

// UpdateEstablishmentInput is the superadmin edit payload. Nil fields are left untouched.
type UpdateEstablishmentInput struct {
	Name      *string              `json:"name"`
	Status    *EstablishmentStatus `json:"status"`
	PlanID    *int64               `json:"plan_id"`
	PaidUntil *time.Time           `json:"paid_until"`
}

// PlanInput creates or replaces a plan
type PlanInput struct {
	Code               string  `json:"code" binding:"required,max=40"`
	Name               string  `json:"name" binding:"required,max=120"`
	Price              float64 `json:"price" binding:"gte=0"`
	MaxProducts        *int    `json:"max_products"`
	EnableAI           bool    `json:"enable_ai"`
	EnableReservations bool    `json:"enable_reservations"`
	EnableAutomation   bool    `json:"enable_automation"`
}

// CategoryInput creates or renames a category
type CategoryInput struct {
	Name string `json:"name" binding:"required,max=120"`
}

// ProductInput creates or replaces a product. IsAvailable defaults to true on create.
type ProductInput struct {
	CategoryID  *int64  `json:"category_id"`
	Name        string  `json:"name" binding:"required,max=160"`
	Description string  `json:"description" binding:"max=2000"`
	Price       float64 `json:"price" binding:"gte=0"`
	ImageURL    string  `json:"image_url" binding:"omitempty,max=500"`
	IsAvailable *bool   `json:"is_available"`
}

// NeighborhoodInput creates or replaces a delivery zone
type NeighborhoodInput struct {
	Name        string  `json:"name" binding:"required,max=120"`
	DeliveryFee float64 `json:"delivery_fee" binding:"gte=0"`
}

// TableInput creates or replaces a table
type TableInput struct {
	Number int    `json:"number" binding:"required,gte=1"`
	Status string `json:"status"`
}

// CommandInput opens a tab on a table
type CommandInput struct {
	TableID    int64  `json:"table_id" binding:"required"`
	WaiterName string `json:"waiter_name" binding:"max=120"`
}

// StatusInput moves an order, command or reservation to a new status
type StatusInput struct {
	Status string `json:"status" binding:"required"`
}
