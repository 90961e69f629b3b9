package cli

import (
	"context"
	"io"
	"os"

	"meshwalk/pkg/errors"
	"meshwalk/pkg/pipeline"
)

// readMeshFile reads the raw bytes of one mesh file. "-" reads stdin.
func readMeshFile(path string) ([]byte, error) {
	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read stdin")
		}
		return data, nil
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, errors.New(errors.ErrCodeFileNotFound, "no such file: %s", path)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read %s", path)
	}
	return data, nil
}

// newRunner creates a pipeline runner wired to the configured cache backend
// and the context logger.
func newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	c, err := newCache(ctx, cfg, noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(c, loggerFromContext(ctx)), nil
}

// writeOutput writes data to path, or stdout when path is empty.
func writeOutput(data []byte, path string) error {
	if path == "" {
		_, err := os.Stdout.Write(data)
		return err
	}
	return os.WriteFile(path, data, 0644)
}
