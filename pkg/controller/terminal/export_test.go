package terminal

// ParseFlags is exported for testing
var ParseFlags = parseFlags

// ResolveChoice is exported for testing
var ResolveChoice = resolveChoice
