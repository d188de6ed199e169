// Package patch applies source patches with git.
package patch

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/qiniu/x/log"
)

// Apply applies the patch files to the tree at srcDir in order. It stops
// at the first patch that does not apply.
func Apply(ctx context.Context, srcDir string, files []string) error {
	for _, file := range files {
		log.Debug("apply patch", file)
		var stderr bytes.Buffer
		cmd := exec.CommandContext(ctx, "git", "apply", "--whitespace=nowarn", "-p1", file)
		cmd.Dir = srcDir
		cmd.Stderr = &stderr
		if err := cmd.Run(); err != nil {
			msg := strings.TrimSpace(stderr.String())
			if msg == "" {
				return fmt.Errorf("apply %s: %w", file, err)
			}
			return fmt.Errorf("apply %s: %w: %s", file, err, msg)
		}
	}
	return nil
}
