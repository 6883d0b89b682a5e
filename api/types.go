package api

// Job is a marketplace job as the backend reports it. Listing endpoints
// return summaries; Job(id) fills Description as well.
type Job struct {
	ID          int     `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description,omitempty"`
	Category    string  `json:"category"`
	Location    string  `json:"location,omitempty"`
	Budget      float64 `json:"budget"`
	Status      string  `json:"status"`
	CustomerID  int     `json:"customer_id"`
	CreatedAt   string  `json:"created_at,omitempty"`
}

// Quote is a worker's offer on a job.
type Quote struct {
	ID       int     `json:"id"`
	JobID    int     `json:"job_id"`
	WorkerID int     `json:"worker_id"`
	Price    float64 `json:"price"`
	Message  string  `json:"message,omitempty"`
	Status   string  `json:"status"`
}

// Review is the feedback left on a completed job.
type Review struct {
	ID       int    `json:"id"`
	JobID    int    `json:"job_id"`
	AuthorID int    `json:"author_id"`
	Rating   int    `json:"rating"`
	Comment  string `json:"comment,omitempty"`
}

// WalletBalance is the caller's current balance.
type WalletBalance struct {
	Balance  float64 `json:"balance"`
	Currency string  `json:"currency"`
}

// AdminUser is an account as the administrative listing reports it.
type AdminUser struct {
	ID       int    `json:"id"`
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	Role     string `json:"role"`
	IsActive bool   `json:"is_active"`
}
