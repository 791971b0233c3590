package poetry

// MockCall records a single Run invocation.
type MockCall struct {
	Args []string
	Opts RunOptions
}

// MockRunner implements Runner for tests, recording every invocation.
type MockRunner struct {
	Calls []MockCall

	// Err is returned by every Run call when set.
	Err error

	// OnRun, when set, is invoked for every Run call.
	OnRun func(args []string, opts RunOptions)
}

// NewMockRunner creates a new MockRunner.
func NewMockRunner() *MockRunner {
	return &MockRunner{}
}

// Run records the invocation.
func (m *MockRunner) Run(args []string, opts RunOptions) error {
	m.Calls = append(m.Calls, MockCall{Args: args, Opts: opts})
	if m.OnRun != nil {
		m.OnRun(args, opts)
	}
	return m.Err
}
