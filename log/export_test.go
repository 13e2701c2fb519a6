package log

// Re-export unexported prefixes for the external log_test package.
var (
	MinorPrefixForTest = minorPrefix
	DebugPrefixForTest = debugPrefix
)
