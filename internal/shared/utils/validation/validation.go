package validation

import (
	"regexp"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var txHashPattern = regexp.MustCompile(`^0x[0-9a-fA-F]{64}$`)

// RegisterCustomValidators installs the binding tags used by the request
// DTOs. "eth_addr" ships with the validator; "tx_hash" is ours.
func RegisterCustomValidators() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}

	v.RegisterValidation("tx_hash", func(fl validator.FieldLevel) bool {
		return txHashPattern.MatchString(fl.Field().String())
	})
}
