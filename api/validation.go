package api

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// fieldErrors maps the JSON field name of each invalid field to a message.
func fieldErrors(err error) map[string]string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}

	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		name := jsonNames[fe.Field()]
		if name == "" {
			name = fe.Field()
		}
		switch fe.Tag() {
		case "required":
			fields[name] = fmt.Sprintf("%s is required", name)
		case "min", "gte":
			fields[name] = fmt.Sprintf("%s must be at least %s", name, fe.Param())
		case "max", "lte":
			fields[name] = fmt.Sprintf("%s must be at most %s", name, fe.Param())
		default:
			fields[name] = fmt.Sprintf("%s failed on '%s'", name, fe.Tag())
		}
	}
	return fields
}

var jsonNames = map[string]string{
	"Query":    "query",
	"Question": "question",
	"TopK":     "top_k",
}
