package dto

// CreateStudentRequest adds one candidate to an event roster.
type CreateStudentRequest struct {
	Name   string `json:"name" validate:"required"`
	Target *int   `json:"target" validate:"omitempty,min=0"`
}

// UpdateStudentRequest patches a student; nil fields stay unchanged.
type UpdateStudentRequest struct {
	Name   *string `json:"name" validate:"omitempty,min=1"`
	Target *int    `json:"target" validate:"omitempty,min=0"`
}

// BulkStudentsRequest replaces an event's student roster in one call.
type BulkStudentsRequest struct {
	Students []CreateStudentRequest `json:"students" validate:"required,min=1,dive"`
}

// CreateInterviewerRequest adds one interviewer to an event roster.
type CreateInterviewerRequest struct {
	Name      string `json:"name" validate:"required"`
	IsVirtual bool   `json:"is_virtual"`
}

// UpdateInterviewerRequest patches an interviewer.
type UpdateInterviewerRequest struct {
	Name      *string `json:"name" validate:"omitempty,min=1"`
	IsVirtual *bool   `json:"is_virtual"`
}

// BulkInterviewersRequest replaces an event's interviewer roster.
type BulkInterviewersRequest struct {
	Interviewers []CreateInterviewerRequest `json:"interviewers" validate:"required,min=1,dive"`
}
