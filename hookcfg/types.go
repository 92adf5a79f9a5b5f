package hookcfg

//go:generate sh -c "cd .. && go run ./tools/schema-generator/"

const (
	// ConfigFileName is the canonical hook registration file name.
	ConfigFileName = ".pre-commit-config.yaml"
	// AltConfigFileName is the alternate extension accepted during discovery.
	AltConfigFileName = ".pre-commit-config.yml"
	// LocalRepo is the marker used in place of a repository URL for hooks
	// defined directly in the registration file.
	LocalRepo = "local"
)

// Hook is a single hook registration within a repository block.
type Hook struct {
	// ID identifies the hook within its repository.
	ID string `yaml:"id" json:"id" jsonschema:"required,description=Identifier of the hook within its repository"`
	// Name overrides the hook's display name.
	Name string `yaml:"name,omitempty" json:"name,omitempty" jsonschema:"description=Display name override"`
	// Args are additional arguments passed to the hook, in order.
	Args []string `yaml:"args,omitempty" json:"args,omitempty" jsonschema:"description=Additional arguments passed to the hook"`
	// LanguageVersion pins the interpreter version the hook runs under.
	LanguageVersion string `yaml:"language_version,omitempty" json:"language_version,omitempty" jsonschema:"description=Interpreter version the hook runs under (e.g. python3.10)"`
	// Entry is the command executed for the hook. Meaningful for local hooks.
	Entry string `yaml:"entry,omitempty" json:"entry,omitempty" jsonschema:"description=Command executed for the hook"`
	// Language names the runtime used to execute the hook. Local hooks must
	// declare it; 'system' means the command is taken from the environment.
	Language string `yaml:"language,omitempty" json:"language,omitempty" jsonschema:"description=Runtime used to execute the hook (e.g. system)"`
	// PassFilenames controls whether staged filenames are appended to the
	// entry. Absent means the tool default (true).
	PassFilenames *bool `yaml:"pass_filenames,omitempty" json:"pass_filenames,omitempty" jsonschema:"description=Whether staged filenames are appended to the entry"`
	// AlwaysRun makes the hook run even when no files match.
	AlwaysRun bool `yaml:"always_run,omitempty" json:"always_run,omitempty" jsonschema:"description=Run even when no files match"`

	// Extra captures unrecognized hook keys for forward compatibility.
	Extra map[string]interface{} `yaml:",inline" json:"-" jsonschema:"-"`
}

// Repo is one repository block: a source plus the hooks registered from it.
type Repo struct {
	// Repo is the repository URL, or the literal 'local' marker.
	Repo string `yaml:"repo" json:"repo" jsonschema:"required,description=Repository URL or the literal 'local' marker"`
	// Rev is the pinned revision (tag, branch, or commit). Absent for local blocks.
	Rev string `yaml:"rev,omitempty" json:"rev,omitempty" jsonschema:"description=Pinned revision (tag or commit); absent for local blocks"`
	// Hooks are the registrations taken from this repository, in file order.
	Hooks []Hook `yaml:"hooks" json:"hooks" jsonschema:"required,minItems=1,description=Hook registrations from this repository"`

	// Extra captures unrecognized repository keys for forward compatibility.
	Extra map[string]interface{} `yaml:",inline" json:"-" jsonschema:"-"`
}

// Config is a parsed hook registration file. Repository and hook order is
// significant and preserved end to end.
type Config struct {
	Repos []Repo `yaml:"repos" json:"repos" jsonschema:"required,description=Ordered sequence of repository blocks"`

	// Extensions captures unrecognized top-level keys for forward compatibility.
	Extensions map[string]interface{} `yaml:",inline" json:"-" jsonschema:"-"`
}

// IsLocal reports whether this block defines hooks directly in the
// registration file rather than pulling them from a repository.
func (r *Repo) IsLocal() bool {
	return r.Repo == LocalRepo
}

// LocalHooks returns every hook registered under a local block, in file order.
func (c *Config) LocalHooks() []Hook {
	var hooks []Hook
	for _, repo := range c.Repos {
		if repo.IsLocal() {
			hooks = append(hooks, repo.Hooks...)
		}
	}
	return hooks
}

// HookByID returns the first hook with the given id under the given
// repository source, or false when no block registers it.
func (c *Config) HookByID(repoSource, id string) (Hook, bool) {
	for _, repo := range c.Repos {
		if repo.Repo != repoSource {
			continue
		}
		for _, hook := range repo.Hooks {
			if hook.ID == id {
				return hook, true
			}
		}
	}
	return Hook{}, false
}

// HookCount returns the total number of hook registrations across all blocks.
func (c *Config) HookCount() int {
	count := 0
	for _, repo := range c.Repos {
		count += len(repo.Hooks)
	}
	return count
}
