package app

// Config holds runtime wiring options for building the daemon.
type Config struct {
	// StateDir persists sessions as JSON under this directory when set;
	// empty keeps everything in memory.
	StateDir string

	// CoprocURL points at a remote coprocessor; empty embeds an
	// in-process one with fresh keys.
	CoprocURL string
}
