package dto

import (
	"time"

	"shelfmark/internal/core/id"
	"shelfmark/internal/domain/location"
)

// CreateLocationRequest for creating locations.
type CreateLocationRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description *string `json:"description"`
	Address     *string `json:"address"`
}

// ToEntity converts the request to a domain Location.
func (r CreateLocationRequest) ToEntity(workspaceID id.ID) *location.Location {
	l := location.NewLocation(workspaceID, r.Name)
	l.Description = r.Description
	l.Address = r.Address
	return l
}

// UpdateLocationRequest for updating locations.
type UpdateLocationRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description *string `json:"description"`
	Address     *string `json:"address"`
	Version     int     `json:"version" binding:"required,min=1"`
}

// ApplyTo applies the request to an existing location.
func (r UpdateLocationRequest) ApplyTo(l *location.Location) {
	l.Name = r.Name
	l.Description = r.Description
	l.Address = r.Address
	l.SetVersion(r.Version)
	l.Touch()
}

// LocationResponse contains location fields.
type LocationResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	Address     *string   `json:"address,omitempty"`
	Version     int       `json:"version"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// FromLocation creates LocationResponse from a domain Location.
func FromLocation(l *location.Location) LocationResponse {
	return LocationResponse{
		ID:          l.ID.String(),
		Name:        l.Name,
		Description: l.Description,
		Address:     l.Address,
		Version:     l.Version,
		CreatedAt:   l.CreatedAt,
		UpdatedAt:   l.UpdatedAt,
	}
}

// FromLocations maps a list of locations.
func FromLocations(list []*location.Location) []LocationResponse {
	out := make([]LocationResponse, 0, len(list))
	for _, l := range list {
		out = append(out, FromLocation(l))
	}
	return out
}
