package shared

import (
	"time"

	"github.com/go-playground/form"
)

// Decoder parses url.Values (query strings, form bodies) into tagged structs.
var Decoder = form.NewDecoder()

func init() {
	Decoder.RegisterCustomTypeFunc(func(vals []string) (interface{}, error) {
		return time.Parse(time.DateOnly, vals[0])
	}, time.Time{})
}
