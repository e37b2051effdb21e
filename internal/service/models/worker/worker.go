package worker

// Worker represents a fulfillment worker. Orders reference workers by id
// only; a worker never owns an order's lifecycle.
type Worker struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	UserID *int64 `json:"userId,omitempty"`
}

// Summary is the worker shape embedded in the admin order dashboard.
type Summary struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Page is a paginated worker listing.
type Page struct {
	Workers []Worker `json:"workers"`
	Total   int64    `json:"total"`
	Page    int      `json:"page"`
	Limit   int      `json:"limit"`
}
