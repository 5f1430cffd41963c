package catalog

import "errors"

// ErrNameRequired is returned when a custom item has no name
var ErrNameRequired = errors.New("item name is required")
