// Package service implements the application layer: each operation loads an
// aggregate, applies one domain mutation, and persists the result.
package service

import "github.com/bookswapapp/bookswap-server/internal/validation"

// validate is the shared command-struct validator for all services.
var validate = validation.New()
