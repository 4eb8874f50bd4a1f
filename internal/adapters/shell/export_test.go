package shell

// Exported for testing.
var (
	ResolveEnvironment = resolveEnvironment
	LookPath           = lookPath
)
