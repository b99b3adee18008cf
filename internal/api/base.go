package api

// DefaultBaseURL is the single source of truth for the default service root.
const DefaultBaseURL = "http://localhost:5000"

// DefaultProcessPath is the processing endpoint.
const DefaultProcessPath = "/process"
