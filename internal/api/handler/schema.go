package handler

type registerRequest struct {
	CitizenID string `json:"cedula"   validate:"required,max=20,alphanum"`
	Username  string `json:"username" validate:"required,min=3,max=50"`
	Password  string `json:"password" validate:"required,min=4,max=72"`
	Role      string `json:"role"     validate:"required"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

type updateUserRequest struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Password string `json:"password" validate:"omitempty,min=4,max=72"`
	Role     string `json:"role"     validate:"required"`
}

// reservationRequest has no owner field; a "usuario" sent by the client is
// ignored.
type reservationRequest struct {
	CitizenID    string `json:"cedula"         validate:"omitempty,max=20"`
	CustomerName string `json:"nombreCliente"  validate:"required,max=100"`
	Date         string `json:"fecha"          validate:"required,datetime=2006-01-02"`
	PartySize    int    `json:"numeroPersonas" validate:"required,min=1,max=50"`
}

// ErrorResponse is the canonical error envelope for all API errors.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}
