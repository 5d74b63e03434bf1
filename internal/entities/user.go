package entities

import (
	"medequip-system/pkg/types"
)

type User struct {
	ID         uint64 `json:"id" db:"id"`
	StaffCode  string `json:"staff_code" db:"staff_code"`
	Email      string `json:"email" db:"email"`
	Password   string `json:"-" db:"password"`
	Name       string `json:"name" db:"name"`
	Department string `json:"department" db:"department"`
	IsAdmin    bool   `json:"is_admin" db:"is_admin"`

	types.BaseEntity
}
