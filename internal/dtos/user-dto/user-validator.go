package user_dto

import (
	"github.com/Xenn-00/vorgang-meister/internal/entity"
	"github.com/go-playground/validator/v10"
)

func IsValidUserRole(fl validator.FieldLevel) bool {
	return entity.UserRole(fl.Field().String()).IsValid()
}

func RegisterValidators(v *validator.Validate) {
	v.RegisterValidation("userRole", IsValidUserRole)
}
