package handlers

import "github.com/go-playground/validator/v10"

// validate is shared across handlers; the validator caches struct metadata
// and is safe for concurrent use.
var validate = validator.New()
