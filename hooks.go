package skipset

// Test hooks (kept separate so instrumentation doesn't clutter logic).
var (
	// descendHook is invoked each time locate drops from level to level-1,
	// with the position the scan resumes after on the lower level.
	descendHook func(level, resumeAfter int)
)
