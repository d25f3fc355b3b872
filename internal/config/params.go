package config

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/gorilla/schema"

	"github.com/vancomm/minesweeper-engine/internal/mines"
)

var decoder = schema.NewDecoder()

// DecodeParams overrides fields of base with key=value arguments such as
// "rows=16" or "density=0.2". Unknown keys are an error.
func DecodeParams(base mines.Params, args []string) (mines.Params, error) {
	values := make(url.Values, len(args))
	for _, arg := range args {
		key, value, ok := strings.Cut(arg, "=")
		if !ok || key == "" {
			return base, fmt.Errorf("malformed argument %q, want key=value", arg)
		}
		values.Set(key, value)
	}
	params := base
	if err := decoder.Decode(&params, values); err != nil {
		return base, fmt.Errorf("unable to decode params: %w", err)
	}
	if err := params.Validate(); err != nil {
		return base, err
	}
	return params, nil
}
