package models

// Alert sources accepted by the backend.
const (
	AlertSourcePredict  = "predict"
	AlertSourceRealtime = "realtime"
)

type AlertRequest struct {
	ToEmails []string `json:"to_emails,omitempty"`
	ToPhones []string `json:"to_phones,omitempty"`
	Subject  string   `json:"subject"`
	Message  string   `json:"message"`
	Source   string   `json:"source"` // predict | realtime
}

type AlertDelivery struct {
	To      string `json:"to"`
	Channel string `json:"channel"` // email | sms
	Status  string `json:"status"`  // SENT | QUEUED
}

type AlertResponse struct {
	OK             bool            `json:"ok"`
	DeliveredCount int             `json:"delivered_count"`
	Delivered      []AlertDelivery `json:"delivered"`
}
