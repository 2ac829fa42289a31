package v1alpha1

import "errors"

// ErrSourceRequired is returned when no source registry URL is configured.
var ErrSourceRequired = errors.New("source registry URL is required")

// ErrDestinationRequired is returned when no destination registry URL is configured.
var ErrDestinationRequired = errors.New("destination registry URL is required")

// ErrSameRegistry is returned when the source and destination point at the same registry host.
var ErrSameRegistry = errors.New("source and destination must be different registries")

// ErrInvalidPageSize is returned when the page size is not a positive number.
var ErrInvalidPageSize = errors.New("page size must be between 1 and 100")

// ErrInvalidConcurrency is returned when the concurrency is not a positive number.
var ErrInvalidConcurrency = errors.New("concurrency must be greater than zero")

// ErrInvalidLogLevel is returned when an unknown log level is specified.
var ErrInvalidLogLevel = errors.New("invalid log level")

// ErrInvalidURL is returned when a registry URL cannot be parsed.
var ErrInvalidURL = errors.New("invalid registry URL")
