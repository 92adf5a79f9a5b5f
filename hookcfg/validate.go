package hookcfg

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/lokitools/schema/errors"
)

// revRegex matches syntactically valid revision identifiers: tags, branch
// names, and commit hashes. Revisions never contain whitespace or shell
// metacharacters.
var revRegex = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._/-]*$`)

// Validate checks the structural properties of the configuration: every hook
// carries an id, every remote block pins a syntactically valid revision, and
// local blocks define runnable entries.
func (c *Config) Validate() error {
	for i, repo := range c.Repos {
		if strings.TrimSpace(repo.Repo) == "" {
			return errors.New(errors.ErrCodeConfigValidation, fmt.Sprintf("repository block %d has no repo source", i)).
				WithDetail("index", i)
		}

		if len(repo.Hooks) == 0 {
			return errors.New(errors.ErrCodeConfigValidation, fmt.Sprintf("repository '%s' registers no hooks", repo.Repo)).
				WithDetail("repo", repo.Repo)
		}

		if repo.IsLocal() {
			if err := validateLocalRepo(&repo); err != nil {
				return err
			}
		} else {
			if err := validateRemoteRepo(&repo); err != nil {
				return err
			}
		}

		for j, hook := range repo.Hooks {
			if strings.TrimSpace(hook.ID) == "" {
				return errors.New(errors.ErrCodeConfigValidation,
					fmt.Sprintf("hook %d in repository '%s' has no id", j, repo.Repo)).
					WithDetail("repo", repo.Repo).
					WithDetail("index", j)
			}
		}
	}

	return nil
}

func validateRemoteRepo(repo *Repo) error {
	if strings.TrimSpace(repo.Rev) == "" {
		return errors.New(errors.ErrCodeConfigValidation,
			fmt.Sprintf("repository '%s' has no pinned revision", repo.Repo)).
			WithDetail("repo", repo.Repo)
	}

	if !revRegex.MatchString(repo.Rev) || strings.Contains(repo.Rev, "..") {
		return errors.New(errors.ErrCodeConfigValidation,
			fmt.Sprintf("repository '%s' has a malformed revision '%s'", repo.Repo, repo.Rev)).
			WithDetail("repo", repo.Repo).
			WithDetail("rev", repo.Rev)
	}

	return nil
}

func validateLocalRepo(repo *Repo) error {
	if repo.Rev != "" {
		return errors.New(errors.ErrCodeConfigValidation,
			fmt.Sprintf("local block must not pin a revision, found '%s'", repo.Rev)).
			WithDetail("rev", repo.Rev)
	}

	for _, hook := range repo.Hooks {
		if strings.TrimSpace(hook.Entry) == "" {
			return errors.New(errors.ErrCodeConfigValidation,
				fmt.Sprintf("local hook '%s' has no entry", hook.ID)).
				WithDetail("hook", hook.ID)
		}
		if strings.TrimSpace(hook.Language) == "" {
			return errors.New(errors.ErrCodeConfigValidation,
				fmt.Sprintf("local hook '%s' declares no language", hook.ID)).
				WithDetail("hook", hook.ID)
		}
	}

	return nil
}

// ValidateSemantics checks cross-entry properties: the same hook id may not be
// registered twice under the same repository and revision unless the repeated
// entries carry different argument lists.
func (c *Config) ValidateSemantics() error {
	seen := make(map[string][][]string)

	for _, repo := range c.Repos {
		for _, hook := range repo.Hooks {
			key := repo.Repo + "@" + repo.Rev + "#" + hook.ID
			for _, prior := range seen[key] {
				if sameArgs(prior, hook.Args) {
					return errors.New(errors.ErrCodeConfigValidation,
						fmt.Sprintf("hook '%s' is registered twice for '%s' at the same revision with identical arguments",
							hook.ID, repo.Repo)).
						WithDetail("repo", repo.Repo).
						WithDetail("rev", repo.Rev).
						WithDetail("hook", hook.ID)
				}
			}
			seen[key] = append(seen[key], hook.Args)
		}
	}

	return nil
}

func sameArgs(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
