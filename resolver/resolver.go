package resolver

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofrs/flock"
	"github.com/lokitools/schema/errors"
	"github.com/lokitools/schema/logging"
	"github.com/lokitools/schema/pkg/profiling"
	"github.com/lokitools/schema/settings"
	"github.com/moby/patternmatcher"
	"github.com/sirupsen/logrus"
)

// LockFileName is the lock file created in the target directory while a run
// rewrites documents in place.
const LockFileName = ".loki-resolve.lock"

// lockTimeout is how long a run waits for a concurrent run to finish.
const lockTimeout = 5 * time.Second

// Options configures a Resolver.
type Options struct {
	// Exclude holds dockerignore-style patterns matched against paths
	// relative to the target directory.
	Exclude []string
	// KeepKeys are re-applied to an object after its $ref is substituted.
	KeepKeys []string
	// Preserve lists the fields of a replaced object that survive the merge.
	Preserve []string
}

// Resolver rewrites schema documents in place, substituting $ref values with
// the schemas they point to.
type Resolver struct {
	opts    Options
	matcher *patternmatcher.PatternMatcher
	logger  *logrus.Entry
}

// New creates a Resolver. Zero-value options fall back to the standard keep
// and preserve lists.
func New(opts Options) (*Resolver, error) {
	if len(opts.KeepKeys) == 0 {
		opts.KeepKeys = append([]string(nil), settings.DefaultKeepKeys...)
	}
	if len(opts.Preserve) == 0 {
		opts.Preserve = append([]string(nil), settings.DefaultPreserve...)
	}

	var matcher *patternmatcher.PatternMatcher
	if len(opts.Exclude) > 0 {
		m, err := patternmatcher.New(opts.Exclude)
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeInvalidInput, "invalid exclude pattern")
		}
		matcher = m
	}

	return &Resolver{
		opts:    opts,
		matcher: matcher,
		logger:  logging.NewLogger("resolver"),
	}, nil
}

// FindFilesWithExtension returns the full paths of all files under folderPath,
// recursively, whose names end with extension. The walk is lexical so results
// are deterministic.
func FindFilesWithExtension(folderPath, extension string) ([]string, error) {
	info, err := os.Stat(folderPath)
	if err != nil || !info.IsDir() {
		return nil, errors.TargetInvalid(folderPath, "must be an existing directory")
	}

	var files []string
	walkErr := filepath.WalkDir(folderPath, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !entry.IsDir() && strings.HasSuffix(path, extension) {
			files = append(files, path)
		}
		return nil
	})
	if walkErr != nil {
		return nil, errors.Wrap(walkErr, errors.ErrCodeTargetInvalid, "failed to scan target directory").
			WithDetail("path", folderPath)
	}
	return files, nil
}

// scan finds the .json documents under targetDir, minus excluded paths.
func (r *Resolver) scan(targetDir string) ([]string, error) {
	files, err := FindFilesWithExtension(targetDir, ".json")
	if err != nil {
		return nil, err
	}

	if r.matcher == nil {
		return files, nil
	}

	kept := files[:0]
	for _, file := range files {
		rel, err := filepath.Rel(targetDir, file)
		if err != nil {
			rel = file
		}
		excluded, err := r.matcher.MatchesOrParentMatches(rel)
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeInvalidInput, "exclude pattern match failed").
				WithDetail("path", rel)
		}
		if excluded {
			r.logger.Debugf("Excluded %s", rel)
			continue
		}
		kept = append(kept, file)
	}
	return kept, nil
}

// lock takes the exclusive run lock inside the target directory so concurrent
// invocations cannot interleave in-place writes.
func (r *Resolver) lock(ctx context.Context, targetDir string) (*flock.Flock, error) {
	lockPath := filepath.Join(targetDir, LockFileName)
	runLock := flock.New(lockPath)

	lockCtx, cancel := context.WithTimeout(ctx, lockTimeout)
	defer cancel()

	locked, err := runLock.TryLockContext(lockCtx, 100*time.Millisecond)
	if err != nil && lockCtx.Err() == nil {
		return nil, errors.Wrap(err, errors.ErrCodeLockHeld, "failed to acquire run lock").
			WithDetail("path", lockPath)
	}
	if !locked {
		return nil, errors.LockHeld(targetDir)
	}
	return runLock, nil
}

// Run resolves every document under targetDir. Files whose external
// references are themselves still unresolved are deferred to a later pass; a
// pass that makes no progress at all reports the remaining files as a cycle.
func (r *Resolver) Run(ctx context.Context, targetDir string) error {
	defer profiling.Start("resolver.Run").Stop()

	// Validate the target before locking: the lock file lives inside it.
	if info, err := os.Stat(targetDir); err != nil || !info.IsDir() {
		return errors.TargetInvalid(targetDir, "must be an existing directory")
	}

	runLock, err := r.lock(ctx, targetDir)
	if err != nil {
		return err
	}
	defer runLock.Unlock()

	deferred, err := r.scan(targetDir)
	if err != nil {
		return err
	}
	if len(deferred) == 0 {
		r.logger.Warnf("No .json files found at path: %s", targetDir)
		return nil
	}

	for len(deferred) > 0 {
		if err := ctx.Err(); err != nil {
			return err
		}

		var next []string
		progressed := false

		for _, filePath := range deferred {
			r.logger.Infof("Analysing %s", filePath)

			done, changed, err := r.resolveFile(filePath)
			if err != nil {
				return err
			}
			if done {
				progressed = true
				continue
			}
			if changed {
				progressed = true
			}
			r.logger.Debugf("%s has been deferred", filePath)
			next = append(next, filePath)
		}

		if !progressed && len(next) > 0 {
			return errors.ResolveCycle(next)
		}
		deferred = next
	}

	return nil
}

// resolveFile runs one resolution pass over a single document. It reports
// whether the document is fully resolved and whether its content changed on
// disk during the pass.
func (r *Resolver) resolveFile(filePath string) (done bool, changed bool, err error) {
	defer profiling.Start("resolver.resolveFile").Stop()

	original, doc, err := readDocument(filePath)
	if err != nil {
		return false, false, err
	}

	refs := CollectRefs(doc)
	if len(refs) == 0 {
		return true, false, nil
	}

	subSchemas, deferOnExternal, err := r.collectSubSchemas(filePath, doc, refs)
	if err != nil {
		return false, false, err
	}

	if len(subSchemas) > 0 {
		MergeRefs(doc, subSchemas, r.opts.KeepKeys, r.opts.Preserve)

		written, err := writeDocument(filePath, doc)
		if err != nil {
			return false, false, err
		}
		changed = !bytes.Equal(original, written)

		if !deferOnExternal && len(CollectRefs(doc)) == 0 {
			return true, changed, nil
		}
	}

	return false, changed, nil
}

// collectSubSchemas fetches the replacement for every reference in the
// document. When an externally referenced document still carries references
// of its own, collection stops and the current file is deferred; whatever was
// already collected is still merged so each pass makes headway.
func (r *Resolver) collectSubSchemas(filePath string, doc map[string]interface{}, refs []interface{}) ([]SubSchema, bool, error) {
	var subSchemas []SubSchema

	for _, ref := range refs {
		kind, err := EvaluateRef(ref)
		if err != nil {
			return nil, false, err
		}
		refString := ref.(string)

		switch kind {
		case RefInternal:
			r.logger.Debugf("Resolving internal reference %s", refString)
			subSchema, err := FetchValue(refString, doc)
			if err != nil {
				return nil, false, err
			}
			subSchemas = append(subSchemas, SubSchema{Ref: refString, Schema: subSchema})

		case RefExternal, RefExternalInternal:
			relativePath, location, _ := strings.Cut(refString, "#")
			externalPath := filepath.Join(filepath.Dir(filePath), filepath.FromSlash(relativePath))

			_, externalDoc, err := readDocument(externalPath)
			if err != nil {
				return nil, false, errors.RefUnresolved(refString, err.Error())
			}
			extracted := ExtractPropertiesSection(externalDoc)

			pending, ok := extracted.(map[string]interface{})
			if ok && len(CollectRefs(pending)) > 0 {
				return subSchemas, true, nil
			}

			subSchema := extracted
			if kind == RefExternalInternal {
				target, ok := extracted.(map[string]interface{})
				if !ok {
					return nil, false, errors.RefUnresolved(refString, "external document has no object schema")
				}
				subSchema, err = FetchValue("#"+location, target)
				if err != nil {
					return nil, false, err
				}
			}
			subSchemas = append(subSchemas, SubSchema{Ref: refString, Schema: subSchema})
		}
	}

	return subSchemas, false, nil
}

// ExtractPropertiesSection returns the document's properties section when one
// exists and the whole document otherwise. Some specs nest their fields under
// 'properties', some carry them at the top level.
func ExtractPropertiesSection(doc map[string]interface{}) interface{} {
	if properties, ok := doc["properties"]; ok {
		return properties
	}
	return doc
}

// ExtractSchema loads a document and digs out the schema section stored under
// key (matched case-insensitively at any depth). An empty key returns the
// whole document.
func ExtractSchema(path string, key string) (interface{}, map[string]interface{}, error) {
	_, doc, err := readDocument(path)
	if err != nil {
		return nil, nil, err
	}

	if key == "" {
		return nil, doc, nil
	}

	foundPath, value, err := WalkKey(doc, key)
	if err != nil {
		return nil, nil, errors.SchemaKeyNotFound(key, path)
	}

	logging.NewLogger("resolver").Debugf("Schema found at %s in %s", foundPath, path)
	return value, doc, nil
}

func readDocument(path string) ([]byte, map[string]interface{}, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, errors.Wrap(err, errors.ErrCodeTargetInvalid, "failed to read document").
			WithDetail("path", path)
	}

	var doc map[string]interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, nil, errors.Wrap(err, errors.ErrCodeConfigInvalid,
			fmt.Sprintf("invalid JSON document: %s", path)).
			WithDetail("path", path)
	}
	return data, doc, nil
}

// writeDocument rewrites a document in place with two-space indentation. Keys
// serialize in lexicographic order, which keeps rewrites stable for diffing.
func writeDocument(path string, doc map[string]interface{}) ([]byte, error) {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternal, "failed to serialize document").
			WithDetail("path", path)
	}
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0644); err != nil {
		code := errors.ErrCodeInternal
		if os.IsPermission(err) {
			code = errors.ErrCodePermissionDenied
		}
		return nil, errors.Wrap(err, code, "failed to write document").
			WithDetail("path", path)
	}
	return data, nil
}
