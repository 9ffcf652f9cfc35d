package dto

// CreateEventRequest registers a new career day event.
type CreateEventRequest struct {
	Name                 string `json:"name" validate:"required"`
	EventDate            string `json:"event_date" validate:"required,datetime=2006-01-02"`
	NumSlots             *int   `json:"num_slots" validate:"omitempty,min=1"`
	DefaultTarget        *int   `json:"default_target" validate:"omitempty,min=0"`
	BreaksMin            *int   `json:"breaks_min" validate:"omitempty,min=0"`
	BreaksMax            *int   `json:"breaks_max" validate:"omitempty,min=0"`
	MinVirtualPerStudent *int   `json:"min_virtual_per_student" validate:"omitempty,min=0"`
	MaxVirtualPerStudent *int   `json:"max_virtual_per_student" validate:"omitempty,min=0"`
}

// UpdateEventRequest patches event fields; nil fields stay unchanged.
type UpdateEventRequest struct {
	Name                 *string `json:"name" validate:"omitempty,min=1"`
	EventDate            *string `json:"event_date" validate:"omitempty,datetime=2006-01-02"`
	NumSlots             *int    `json:"num_slots" validate:"omitempty,min=1"`
	DefaultTarget        *int    `json:"default_target" validate:"omitempty,min=0"`
	BreaksMin            *int    `json:"breaks_min" validate:"omitempty,min=0"`
	BreaksMax            *int    `json:"breaks_max" validate:"omitempty,min=0"`
	MinVirtualPerStudent *int    `json:"min_virtual_per_student" validate:"omitempty,min=0"`
	MaxVirtualPerStudent *int    `json:"max_virtual_per_student" validate:"omitempty,min=0"`
}
