package dto

import (
	"reflect"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// RegisterCustomValidations teaches gin's validator engine how to handle
// decimal.Decimal fields so numeric tags like gt=0 apply to amounts.
// Call once at startup before serving requests.
func RegisterCustomValidations() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterCustomTypeFunc(decimalAsFloat, decimal.Decimal{})
	}
}

func decimalAsFloat(field reflect.Value) interface{} {
	if d, ok := field.Interface().(decimal.Decimal); ok {
		f, _ := d.Float64()
		return f
	}
	return nil
}
