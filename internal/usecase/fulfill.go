package usecase

import (
	"context"
	"errors"
	"strings"

	"sneaker-fulfillment/internal/domain"
)

// Stage is the depth of a turn within one lookup conversation.
type Stage string

const (
	StageQuery     Stage = "query"
	StageSelection Stage = "selection"
	StageFollowup  Stage = "followup"
)

// Intent names as configured on the dialogue platform. Each follow-up intent
// is named after its parent plus one " - custom" suffix per level of depth.
const (
	IntentPriceLookup     = "price_lookup"
	IntentPriceSelect     = IntentPriceLookup + " - custom"
	IntentPriceFollowup   = IntentPriceSelect + " - custom"
	IntentDetailsLookup   = "sneaker_details"
	IntentDetailsSelect   = IntentDetailsLookup + " - custom"
	IntentDetailsFollowup = IntentDetailsSelect + " - custom"
)

type route struct {
	stage Stage
	info  domain.InfoType
}

// The final follow-up offers the opposite of what the chain started with.
var routes = map[string]route{
	IntentPriceLookup:     {StageQuery, domain.InfoPrice},
	IntentPriceSelect:     {StageSelection, domain.InfoPrice},
	IntentPriceFollowup:   {StageFollowup, domain.InfoDetails},
	IntentDetailsLookup:   {StageQuery, domain.InfoDetails},
	IntentDetailsSelect:   {StageSelection, domain.InfoDetails},
	IntentDetailsFollowup: {StageFollowup, domain.InfoPrice},
}

// Route reports the stage and info type an intent name is handled with.
func Route(intent string) (Stage, domain.InfoType, bool) {
	r, ok := routes[intent]
	return r.stage, r.info, ok
}

// ProductSearcher returns candidate products for a query. An upstream
// failure is indistinguishable from an empty result.
type ProductSearcher interface {
	Search(ctx context.Context, q domain.SearchQuery) []domain.Product
}

type FulfillmentService struct {
	products ProductSearcher
}

func NewFulfillmentService(p ProductSearcher) (*FulfillmentService, error) {
	if p == nil {
		return nil, errors.New("usecase: product searcher must not be nil")
	}
	return &FulfillmentService{products: p}, nil
}

// Fulfill dispatches one webhook turn to its handler.
func (s *FulfillmentService) Fulfill(ctx context.Context, req domain.WebhookRequest) (domain.WebhookResponse, error) {
	intent := strings.TrimSpace(req.IntentName())
	if intent == "" {
		return domain.WebhookResponse{}, newError(ErrorInvalidInput, "missing_intent", nil)
	}
	r, ok := routes[intent]
	if !ok {
		return domain.WebhookResponse{}, newError(ErrorUnknownIntent, intent, nil)
	}

	switch r.stage {
	case StageQuery:
		return s.handleQuery(ctx, req, r.info)
	case StageSelection:
		return handleSelection(req, r.info)
	case StageFollowup:
		return handleFollowup(req, r.info)
	}
	return domain.WebhookResponse{}, newError(ErrorInternal, "unrouted_stage", nil)
}
