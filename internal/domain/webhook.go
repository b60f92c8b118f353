package domain

// WebhookRequest is the subset of the dialogue platform's webhook payload
// used for fulfillment.
type WebhookRequest struct {
	ResponseID  string      `json:"responseId,omitempty"`
	Session     string      `json:"session"`
	QueryResult QueryResult `json:"queryResult"`
}

type QueryResult struct {
	QueryText      string    `json:"queryText,omitempty"`
	Intent         Intent    `json:"intent"`
	Parameters     Params    `json:"parameters"`
	OutputContexts []Context `json:"outputContexts"`
}

type Intent struct {
	Name        string `json:"name,omitempty"`
	DisplayName string `json:"displayName"`
}

// WebhookResponse is returned to the platform after every turn.
type WebhookResponse struct {
	FulfillmentText string    `json:"fulfillmentText"`
	OutputContexts  []Context `json:"outputContexts,omitempty"`
}

// IntentName returns the display name the platform matched for this turn.
func (r WebhookRequest) IntentName() string {
	return r.QueryResult.Intent.DisplayName
}
