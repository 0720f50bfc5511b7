package handler

type postRequest struct {
	Title   string         `json:"title"   validate:"required,max=200"`
	Content map[string]any `json:"content" validate:"required"`
	Excerpt string         `json:"excerpt" validate:"omitempty,max=500"`
	Tags    []string       `json:"tags"    validate:"omitempty,dive,max=50"`
	Status  string         `json:"status"  validate:"omitempty,oneof=draft published"`
}

type postQuery struct {
	Tag   string `query:"tag"`
	Page  int    `query:"page"  validate:"omitempty,gte=1"`
	Limit int    `query:"limit" validate:"omitempty,gte=1,lte=100"`
}
