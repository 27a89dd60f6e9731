package request

type DirectorRequest struct {
	Name        string `json:"name" validate:"required,min=1,max=255"`
	Dob         string `json:"dob" validate:"required,datetime=2006-01-02"`
	Nationality string `json:"nationality" validate:"required,min=1,max=255"`
}

type DirectorUpdateRequest struct {
	Name        *string `json:"name,omitempty" validate:"omitempty,min=1,max=255"`
	Dob         *string `json:"dob,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Nationality *string `json:"nationality,omitempty" validate:"omitempty,min=1,max=255"`
}
