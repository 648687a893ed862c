package httpdto

import "time"

type CreateComplaintRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description" binding:"required"`
	Location    string `json:"location"`
	Department  string `json:"department"`
	DeptEmail   string `json:"dept_email" binding:"omitempty,email"`
}

type ComplaintDTO struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Location    string     `json:"location,omitempty"`
	Department  string     `json:"department,omitempty"`
	Status      string     `json:"status"`
	FiledAt     *time.Time `json:"filed_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

type CreateComplaintResponse struct {
	Complaint ComplaintDTO `json:"complaint"`
	Checkout  CheckoutDTO  `json:"checkout"`
}

type ComplaintListResponse struct {
	Complaints []ComplaintDTO `json:"complaints"`
	Total      int64          `json:"total"`
	Page       int            `json:"page"`
	Limit      int            `json:"limit"`
}
