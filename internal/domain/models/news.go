package models

// NewsRequest is the inbound news proxy query.
type NewsRequest struct {
	Query    string `query:"query" json:"query" validate:"required"`
	Sort     string `query:"sort" json:"sort" default:"relevancy" validate:"oneof=relevancy popularity publishedAt"`
	PageSize string `query:"pageSize" json:"pageSize" default:"5" validate:"numeric"`
}

// Article is the simplified article returned by the proxy.
type Article struct {
	Title       string `json:"title"`
	URL         string `json:"url"`
	Source      string `json:"source"`
	PublishedAt string `json:"publishedAt"`
}

// SignalsRequest filters trade signals by direction.
type SignalsRequest struct {
	Direction string `query:"direction" json:"direction" validate:"omitempty,oneof=long short none"`
}
