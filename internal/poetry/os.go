package poetry

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/pymono-dev/pymono/internal/models"
)

// OSRunner implements Runner by invoking the real poetry executable.
type OSRunner struct {
	ctx context.Context
}

// NewOSRunner creates a new OSRunner.
func NewOSRunner() *OSRunner {
	return &OSRunner{
		ctx: context.Background(),
	}
}

// WithContext returns a new runner with the given context.
func (r *OSRunner) WithContext(ctx context.Context) Runner {
	return &OSRunner{
		ctx: ctx,
	}
}

// Run executes poetry with the given arguments.
func (r *OSRunner) Run(args []string, opts RunOptions) error {
	cmd := exec.CommandContext(r.ctx, "poetry", args...)
	cmd.Dir = opts.Dir

	var stderr bytes.Buffer
	if opts.Log {
		fmt.Printf("Running poetry %s\n", strings.Join(args, " "))
		cmd.Stdout = os.Stdout
		cmd.Stderr = os.Stderr
	} else {
		cmd.Stderr = &stderr
	}

	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			err = fmt.Errorf("%w: %s", err, msg)
		}
		return &models.ExternalToolError{Tool: "poetry", Args: args, Err: err}
	}

	return nil
}
