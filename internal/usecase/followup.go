package usecase

import "sneaker-fulfillment/internal/domain"

// handleFollowup answers the last question about the selected product and
// ends the flow: no context is attached.
func handleFollowup(req domain.WebhookRequest, info domain.InfoType) (domain.WebhookResponse, error) {
	product, err := domain.SelectedSneaker(req.QueryResult.OutputContexts)
	if err != nil {
		return domain.WebhookResponse{}, newError(ErrorContextMissing, "selected_sneaker_unavailable", err)
	}
	return domain.WebhookResponse{FulfillmentText: followupReply(product, info)}, nil
}
