package dto

type SupplierRequest struct {
	Name          string  `json:"name"           validate:"required,min=2"`
	ContactPerson *string `json:"contact_person"`
	Email         *string `json:"email"          validate:"omitempty,email"`
	Phone         *string `json:"phone"`
	Address       *string `json:"address"`
}

type SupplierResponse struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	ContactPerson *string `json:"contact_person,omitempty"`
	Email         *string `json:"email,omitempty"`
	Phone         *string `json:"phone,omitempty"`
	Address       *string `json:"address,omitempty"`
	Active        bool    `json:"active"`
	CreatedAt     string  `json:"created_at"`
}
