package tools

import (
	"context"
	"fmt"
	"io"
	"os"
)

const (
	defaultReadCap = 64 << 10
	maxReadCap     = 1 << 20
)

// handleReadFile reads at most a capped number of bytes. The path in
// args is already canonical and cleared by the dispatcher; this
// handler only does the I/O.
func handleReadFile(_ context.Context, args map[string]any) (any, error) {
	path, _ := args["path"].(string)

	cap64 := int64(defaultReadCap)
	if n, ok := args["max_bytes"].(int64); ok && n > 0 {
		cap64 = n
	}
	if cap64 > maxReadCap {
		cap64 = maxReadCap
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s is a directory", path)
	}

	data, err := io.ReadAll(io.LimitReader(f, cap64))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	return map[string]any{
		"path":      path,
		"size":      info.Size(),
		"content":   string(data),
		"truncated": info.Size() > int64(len(data)),
	}, nil
}
