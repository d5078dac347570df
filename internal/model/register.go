package model

// NotionCallbackRequest carries the query parameters of the OAuth redirect
// request. Notion sends either an error, a code+state pair, or nothing.
type NotionCallbackRequest struct {
	Code  string `json:"code"`
	State string `json:"state"`
	Error string `json:"error"`
}

// NotionCallbackResponse is rendered as a plain-text page; there is no
// chat channel to reply into on this flow.
type NotionCallbackResponse struct {
	Status  int
	Message string
}
