package httpdto

import "time"

type CreateRTIRequest struct {
	Subject   string `json:"subject" binding:"required"`
	Authority string `json:"authority"`
	BodyText  string `json:"body_text"`
}

type RTIDTO struct {
	ID          string     `json:"id"`
	Subject     string     `json:"subject"`
	Authority   string     `json:"authority,omitempty"`
	BodyText    string     `json:"body_text"`
	Status      string     `json:"status"`
	DocumentURL *string    `json:"document_url,omitempty"`
	PaidAt      *time.Time `json:"paid_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

type CreateRTIResponse struct {
	RTI      RTIDTO      `json:"rti"`
	Checkout CheckoutDTO `json:"checkout"`
}
