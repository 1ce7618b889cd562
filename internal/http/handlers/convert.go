package handlers

import "course-go-avito-dispatch/internal/domain"

func dispatchResultToResponse(result domain.DispatchResult) startDispatchResponse {
	return startDispatchResponse{
		DeliveryID: result.DeliveryID,
		Candidates: result.Candidates,
		Status:     "dispatching",
	}
}

func acceptResultToResponse(result domain.AcceptResult) webhookResponse {
	return webhookResponse{
		Status:     "assigned",
		DeliveryID: result.DeliveryID,
	}
}
