package main

// Exit codes.
const (
	ExitSuccess     = 0 // Success
	ExitError       = 1 // General error (invalid arguments, runtime failure)
	ExitConfigError = 2 // Configuration error
	ExitFetchError  = 3 // The service could not be fetched or answered with an error
	ExitStoreError  = 4 // Local store error
)
