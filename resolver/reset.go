package resolver

import "github.com/lokitools/schema/pkg/profiling"

// Reset reads and rewrites every document under targetDir without resolving
// anything, normalizing indentation and key order. Running it before a
// resolution pass keeps the subsequent diffs reviewable.
func (r *Resolver) Reset(targetDir string) (int, error) {
	defer profiling.Start("resolver.Reset").Stop()

	files, err := r.scan(targetDir)
	if err != nil {
		return 0, err
	}
	if len(files) == 0 {
		r.logger.Warnf("No .json files found at path: %s", targetDir)
		return 0, nil
	}

	for _, filePath := range files {
		_, doc, err := readDocument(filePath)
		if err != nil {
			return 0, err
		}
		if _, err := writeDocument(filePath, doc); err != nil {
			return 0, err
		}
		r.logger.Debugf("Rewrote %s", filePath)
	}

	return len(files), nil
}
