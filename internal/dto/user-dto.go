package dto

type UpdateUserDTO struct {
	StaffCode  string `json:"staff_code" validate:"required"`
	Email      string `json:"email" validate:"required,email"`
	Name       string `json:"name" validate:"required"`
	Department string `json:"department" validate:"required"`
}
