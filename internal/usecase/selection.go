package usecase

import (
	"math"
	"strconv"

	"sneaker-fulfillment/internal/domain"
)

const paramNumber = "number"

// handleSelection picks one product out of the listed candidates.
func handleSelection(req domain.WebhookRequest, info domain.InfoType) (domain.WebhookResponse, error) {
	number, err := selectionNumber(req.QueryResult.Parameters)
	if err != nil {
		return domain.WebhookResponse{}, err
	}
	products, err := domain.ListedSneakers(req.QueryResult.OutputContexts)
	if err != nil {
		return domain.WebhookResponse{}, newError(ErrorInvalidSelection, "sneakers_context_unavailable", err)
	}
	idx := number - 1
	if idx < 0 || idx >= len(products) {
		return domain.WebhookResponse{}, newError(ErrorInvalidSelection, "selection_out_of_range", nil)
	}
	if req.Session == "" {
		return domain.WebhookResponse{}, newError(ErrorInvalidInput, "missing_session", nil)
	}

	product := products[idx]
	c, err := domain.SelectedSneakerContext(req.Session, product, info.Opposite())
	if err != nil {
		return domain.WebhookResponse{}, newError(ErrorInternal, "encode_selected_context", err)
	}
	return domain.WebhookResponse{
		FulfillmentText: selectionReply(product, info),
		OutputContexts:  []domain.Context{c},
	}, nil
}

// selectionNumber returns the 1-based list position the user picked. The
// platform sends numbers as floats, so "2" and 2.0 are both accepted.
func selectionNumber(params domain.Params) (int, error) {
	v, ok := params.Lookup(paramNumber)
	if !ok {
		return 1, nil
	}
	f, err := strconv.ParseFloat(v.String(), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, newError(ErrorInvalidInput, "invalid_number", err)
	}
	if f > math.MaxInt32 || f < math.MinInt32 {
		return 0, newError(ErrorInvalidSelection, "selection_out_of_range", nil)
	}
	return int(f), nil
}
