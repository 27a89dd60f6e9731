package response

import (
	"time"

	"movie-catalog/internal/data/entity"
)

type DirectorResponse struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Dob         string    `json:"dob"`
	Nationality string    `json:"nationality"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
	Version     int       `json:"version"`
}

func DirectorToResponse(d *entity.Director) DirectorResponse {
	return DirectorResponse{
		ID:          d.ID,
		Name:        d.Name,
		Dob:         d.Dob.Format("2006-01-02"),
		Nationality: d.Nationality,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
		Version:     d.Version,
	}
}
