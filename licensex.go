package licensex

var (
	VERSION = "dev"
	COMMIT  = "unknown"
)
