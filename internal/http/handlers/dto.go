package handlers

type startDispatchRequest struct {
	DeliveryID int64 `json:"delivery_id"`
}

type startDispatchResponse struct {
	DeliveryID int64  `json:"delivery_id"`
	Candidates int    `json:"candidates"`
	Status     string `json:"status"`
}

type webhookResponse struct {
	Status     string `json:"status"`
	DeliveryID int64  `json:"delivery_id,omitempty"`
}
