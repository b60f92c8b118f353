package usecase

import (
	"context"

	"sneaker-fulfillment/internal/domain"
)

const (
	paramBrand = "brand"
	paramModel = "model"
	paramColor = "color"
)

// handleQuery runs the product lookup and lists the candidates.
func (s *FulfillmentService) handleQuery(ctx context.Context, req domain.WebhookRequest, info domain.InfoType) (domain.WebhookResponse, error) {
	params := req.QueryResult.Parameters
	products := s.products.Search(ctx, domain.SearchQuery{
		Brand: params.Get(paramBrand),
		Model: params.Get(paramModel),
		Color: params.Get(paramColor),
	})
	if len(products) == 0 {
		return domain.WebhookResponse{FulfillmentText: ReplyNoResults}, nil
	}
	return listProducts(req.Session, products, info)
}

func listProducts(session string, products []domain.Product, info domain.InfoType) (domain.WebhookResponse, error) {
	if session == "" {
		return domain.WebhookResponse{}, newError(ErrorInvalidInput, "missing_session", nil)
	}
	c, err := domain.SneakersContext(session, products, info)
	if err != nil {
		return domain.WebhookResponse{}, newError(ErrorInternal, "encode_sneakers_context", err)
	}
	return domain.WebhookResponse{
		FulfillmentText: listReply(products),
		OutputContexts:  []domain.Context{c},
	}, nil
}
