package scheduler

import (
	"context"
	"fmt"
	"os"
	"os/exec"

	"go.uber.org/zap"
)

// SubprocessRunner executes one pipeline run by re-execing the current
// binary with the scrape subcommand. The child's exit code classifies the
// run; a crash or hang inside it cannot take down the control service.
type SubprocessRunner struct {
	configPath string
	logger     *zap.Logger
}

// NewSubprocessRunner builds a SubprocessRunner. configPath, when set, is
// forwarded to the child so both processes read the same configuration.
func NewSubprocessRunner(configPath string, logger *zap.Logger) *SubprocessRunner {
	return &SubprocessRunner{configPath: configPath, logger: logger}
}

// Run invokes the scrape subcommand and returns its combined output. A
// non-zero exit comes back as an error wrapping exec.ExitError.
func (r *SubprocessRunner) Run(ctx context.Context) ([]byte, error) {
	exe, err := os.Executable()
	if err != nil {
		return nil, fmt.Errorf("resolve executable: %w", err)
	}
	args := []string{"scrape"}
	if r.configPath != "" {
		args = append(args, "--config", r.configPath)
	}
	r.logger.Info("starting scrape subprocess", zap.String("exe", exe))

	cmd := exec.CommandContext(ctx, exe, args...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return output, fmt.Errorf("scrape subprocess: %w", err)
	}
	return output, nil
}
