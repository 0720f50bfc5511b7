package handler

type bookRequest struct {
	Title           string   `json:"title"           validate:"required,max=500"`
	Author          string   `json:"author"          validate:"required,max=200"`
	Genre           string   `json:"genre"           validate:"omitempty,max=100"`
	PublicationYear int      `json:"publicationYear" validate:"omitempty,gte=1000,lte=2100"`
	ISBN            string   `json:"isbn"            validate:"omitempty,isbn"`
	CoverImage      string   `json:"coverImage"      validate:"omitempty,url"`
	Rating          *float64 `json:"brigittesRating" validate:"omitempty,gte=0,lte=10"`
	Notes           string   `json:"brigittesNotes"  validate:"omitempty,max=5000"`
	Tags            []string `json:"tags"            validate:"omitempty,dive,max=50"`
	PageCount       int      `json:"pageCount"       validate:"omitempty,gte=1"`
	Status          string   `json:"status"          validate:"omitempty,oneof=want-to-read currently-reading read"`
	DateStarted     string   `json:"dateStarted"`
	DateFinished    string   `json:"dateFinished"`
}

type bookQuery struct {
	Search    string   `query:"search"    validate:"omitempty,max=200"`
	Genre     string   `query:"genre"`
	Author    string   `query:"author"`
	Status    string   `query:"status"    validate:"omitempty,oneof=want-to-read currently-reading read"`
	MinRating *float64 `query:"minRating" validate:"omitempty,gte=0,lte=10"`
	MaxRating *float64 `query:"maxRating" validate:"omitempty,gte=0,lte=10"`
	Sort      string   `query:"sort"`
	Page      int      `query:"page"      validate:"omitempty,gte=1"`
	Limit     int      `query:"limit"     validate:"omitempty,gte=1,lte=5000"`
}

type catalogQuery struct {
	Title  string `query:"title"`
	Author string `query:"author"`
	ISBN   string `query:"isbn" validate:"omitempty,isbn"`
}
