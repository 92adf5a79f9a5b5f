package hookcfg

import (
	"fmt"
	"os"
	"sort"
	"strings"
)

// Severity classifies a lint finding.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Finding is a single lint result tied to a location in the configuration.
type Finding struct {
	Severity Severity `json:"severity"`
	Code     string   `json:"code"`
	Message  string   `json:"message"`
	Repo     string   `json:"repo,omitempty"`
	Hook     string   `json:"hook,omitempty"`
}

// Report aggregates every finding for one configuration file.
type Report struct {
	Path     string    `json:"path,omitempty"`
	Findings []Finding `json:"findings"`
}

// Errors returns the number of error-severity findings.
func (r *Report) Errors() int {
	count := 0
	for _, f := range r.Findings {
		if f.Severity == SeverityError {
			count++
		}
	}
	return count
}

// Warnings returns the number of warning-severity findings.
func (r *Report) Warnings() int {
	count := 0
	for _, f := range r.Findings {
		if f.Severity == SeverityWarning {
			count++
		}
	}
	return count
}

// OK reports whether the configuration passed without errors. Warnings do not
// fail a report; strict handling is the caller's decision.
func (r *Report) OK() bool {
	return r.Errors() == 0
}

func (r *Report) add(severity Severity, code, message, repo, hook string) {
	r.Findings = append(r.Findings, Finding{
		Severity: severity,
		Code:     code,
		Message:  message,
		Repo:     repo,
		Hook:     hook,
	})
}

// LintFile parses and lints a hook registration file. A parse failure is
// returned as the report's single finding rather than an error, so callers
// always get a report to render.
func LintFile(path string) (*Report, error) {
	report := &Report{Path: path}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg, err := Parse(data)
	if err != nil {
		report.add(SeverityError, "parse-error", err.Error(), "", "")
		return report, nil
	}

	lintInto(cfg, report)
	return report, nil
}

// Lint checks a parsed configuration and aggregates every finding instead of
// stopping at the first, covering the structural and cross-entry properties
// plus advisory warnings.
func Lint(cfg *Config) *Report {
	report := &Report{}
	lintInto(cfg, report)
	return report
}

func lintInto(cfg *Config, report *Report) {
	if len(cfg.Repos) == 0 {
		report.add(SeverityWarning, "empty-config", "no repositories registered", "", "")
	}

	for _, key := range sortedKeys(cfg.Extensions) {
		report.add(SeverityWarning, "unknown-key",
			fmt.Sprintf("unrecognized top-level key '%s'", key), "", "")
	}

	seen := make(map[string][][]string)

	for i, repo := range cfg.Repos {
		if strings.TrimSpace(repo.Repo) == "" {
			report.add(SeverityError, "missing-repo",
				fmt.Sprintf("repository block %d has no repo source", i), "", "")
			continue
		}

		if len(repo.Hooks) == 0 {
			report.add(SeverityError, "no-hooks",
				fmt.Sprintf("repository '%s' registers no hooks", repo.Repo), repo.Repo, "")
		}

		for _, key := range sortedKeys(repo.Extra) {
			report.add(SeverityWarning, "unknown-key",
				fmt.Sprintf("unrecognized key '%s' on repository '%s'", key, repo.Repo), repo.Repo, "")
		}

		if repo.IsLocal() {
			lintLocalRepo(&repo, report)
		} else {
			lintRemoteRepo(&repo, report)
		}

		for j, hook := range repo.Hooks {
			if strings.TrimSpace(hook.ID) == "" {
				report.add(SeverityError, "missing-id",
					fmt.Sprintf("hook %d in repository '%s' has no id", j, repo.Repo), repo.Repo, "")
				continue
			}

			for _, key := range sortedKeys(hook.Extra) {
				report.add(SeverityWarning, "unknown-key",
					fmt.Sprintf("unrecognized key '%s' on hook '%s'", key, hook.ID), repo.Repo, hook.ID)
			}

			key := repo.Repo + "@" + repo.Rev + "#" + hook.ID
			duplicated := false
			for _, prior := range seen[key] {
				if sameArgs(prior, hook.Args) {
					report.add(SeverityError, "duplicate-hook",
						fmt.Sprintf("hook '%s' is registered twice for '%s' at the same revision with identical arguments",
							hook.ID, repo.Repo), repo.Repo, hook.ID)
					duplicated = true
					break
				}
			}
			if !duplicated {
				seen[key] = append(seen[key], hook.Args)
			}
		}
	}
}

func lintRemoteRepo(repo *Repo, report *Report) {
	if strings.TrimSpace(repo.Rev) == "" {
		report.add(SeverityError, "missing-rev",
			fmt.Sprintf("repository '%s' has no pinned revision", repo.Repo), repo.Repo, "")
	} else if !revRegex.MatchString(repo.Rev) || strings.Contains(repo.Rev, "..") {
		report.add(SeverityError, "malformed-rev",
			fmt.Sprintf("repository '%s' has a malformed revision '%s'", repo.Repo, repo.Rev), repo.Repo, "")
	}

	for _, hook := range repo.Hooks {
		if hook.Entry != "" || hook.Language != "" {
			report.add(SeverityWarning, "upstream-override",
				fmt.Sprintf("hook '%s' overrides the upstream entry or language", hook.ID), repo.Repo, hook.ID)
		}
	}
}

func lintLocalRepo(repo *Repo, report *Report) {
	if repo.Rev != "" {
		report.add(SeverityError, "local-rev",
			fmt.Sprintf("local block must not pin a revision, found '%s'", repo.Rev), repo.Repo, "")
	}

	for _, hook := range repo.Hooks {
		if hook.ID == "" {
			continue
		}
		if strings.TrimSpace(hook.Entry) == "" {
			report.add(SeverityError, "local-missing-entry",
				fmt.Sprintf("local hook '%s' has no entry", hook.ID), repo.Repo, hook.ID)
		}
		if strings.TrimSpace(hook.Language) == "" {
			report.add(SeverityError, "local-missing-language",
				fmt.Sprintf("local hook '%s' declares no language", hook.ID), repo.Repo, hook.ID)
		}
	}
}

// sortedKeys returns map keys in sorted order so findings are stable across runs.
func sortedKeys(m map[string]interface{}) []string {
	if len(m) == 0 {
		return nil
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
