package poetry

// RunOptions controls how the external poetry process is invoked.
type RunOptions struct {
	// Log streams the subprocess output to the user.
	Log bool

	// Dir is the working directory for the invocation.
	Dir string
}

// Runner abstracts the external poetry executable. Abnormal exits are
// surfaced to the caller, never swallowed.
type Runner interface {
	Run(args []string, opts RunOptions) error
}
