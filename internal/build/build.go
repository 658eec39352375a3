package build

// Overridden at build time via -ldflags "-X".
var (
	ShortVersion = "0.0.0-dev"
	GitRef       = "unknown"
)

var LongVersion = ShortVersion + " (" + GitRef + ")"
