package order

// CreateOrderItem line item payload.
// swagger:model CreateOrderItem
type CreateOrderItem struct {
	ProductID string `json:"product_id" binding:"required" example:"4e7d4e5c-5cb9-4a3f-9f21-7e1a4f9f2b2a"`
	Quantity  int    `json:"quantity"   binding:"required,gt=0" example:"2"`
}

// CreateOrderRequest order creation payload. TotalAmount and TotalItems are
// accepted for wire compatibility but advisory only: the service always
// recomputes both from catalog prices.
// swagger:model CreateOrderRequest
type CreateOrderRequest struct {
	Items       []CreateOrderItem `json:"items" binding:"required,min=1,dive"`
	TotalAmount string            `json:"total_amount,omitempty"`
	TotalItems  int               `json:"total_items,omitempty"`
}

// ChangeStatusRequest status transition payload.
// swagger:model ChangeStatusRequest
type ChangeStatusRequest struct {
	Status string `json:"status" binding:"required" example:"confirmed"`
}

// PageQuery pagination filter for order listings.
type PageQuery struct {
	Status string `form:"status"`
	Page   int    `form:"page,default=1"  binding:"omitempty,gt=0"`
	Limit  int    `form:"limit,default=10" binding:"omitempty,gt=0"`
}

// PageMeta pagination metadata.
type PageMeta struct {
	Total    int `json:"total"`
	Page     int `json:"page"`
	LastPage int `json:"lastPage"`
}

// Page paginated order listing (summaries only, no items).
// swagger:model OrdersPage
type Page struct {
	Data []Order  `json:"data"`
	Meta PageMeta `json:"meta"`
}

// Detail an order together with its line items.
// swagger:model OrderDetail
type Detail struct {
	Order
	Items []Item `json:"items"`
}

// HTTPError represents a standard error in JSON.
// swagger:model
type HTTPError struct {
	// Error message
	// example: order not found
	Error string `json:"error"`
}
