package handler

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// CredentialsForm is posted by the login and registration pages.
type CredentialsForm struct {
	Username string `form:"username" binding:"required,max=50"`
	Password string `form:"password" binding:"required"`
	Next     string `form:"next"`
}

// PasswordChangeForm is posted by the change password page.
type PasswordChangeForm struct {
	OldPassword        string `form:"old_password" binding:"required"`
	NewPassword        string `form:"new_password" binding:"required,min=6"`
	NewPasswordConfirm string `form:"new_password_confirm" binding:"required,eqfield=NewPassword"`
}

// fieldErrors turns binding errors into messages keyed by struct field name.
func fieldErrors(err error) map[string][]string {
	out := map[string][]string{}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		out["_form"] = append(out["_form"], "Invalid form submission.")
		return out
	}

	for _, fe := range verrs {
		var msg string
		switch fe.Tag() {
		case "required":
			msg = "This field is required."
		case "min":
			msg = fmt.Sprintf("Field must be at least %s characters long.", fe.Param())
		case "max":
			msg = fmt.Sprintf("Field cannot be longer than %s characters.", fe.Param())
		case "eqfield":
			msg = "Passwords must match."
		default:
			msg = "Invalid value."
		}
		out[fe.Field()] = append(out[fe.Field()], msg)
	}
	return out
}
