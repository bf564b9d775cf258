package dto

type CrearClienteRequest struct {
	Nombre   string  `json:"nombre" validate:"required"`
	Email    *string `json:"email"  validate:"omitempty,email"`
	Telefono *string `json:"telefono"`
}

type ActualizarClienteRequest struct {
	Nombre   *string `json:"nombre"`
	Email    *string `json:"email" validate:"omitempty,email"`
	Telefono *string `json:"telefono"`
	Activo   *bool   `json:"activo"`
}

type ClienteResponse struct {
	ID        string  `json:"id"`
	Nombre    string  `json:"nombre"`
	Email     *string `json:"email,omitempty"`
	Telefono  *string `json:"telefono,omitempty"`
	Activo    bool    `json:"activo"`
	Mostrador bool    `json:"mostrador"`
}
