package request

type GenreRequest struct {
	Name string `json:"name" validate:"required,min=1,max=50"`
}

type GenreUpdateRequest struct {
	Name *string `json:"name,omitempty" validate:"omitempty,min=1,max=50"`
}
