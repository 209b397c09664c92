package render

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

func newValidator() *validator.Validate {
	validate := validator.New()
	validate.RegisterTagNameFunc(useJSONTagNames)
	return validate
}

// Report on 'TagName' json tag instead of the struct field name
// Look at documentation of 'RegisterTagNameFunc' for more details
func useJSONTagNames(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	// skip if tag key says it should be ignored
	if name == "-" {
		return ""
	}
	return name
}
