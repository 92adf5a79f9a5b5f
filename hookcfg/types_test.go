package hookcfg

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsLocal(t *testing.T) {
	remote := Repo{Repo: "https://github.com/psf/black"}
	assert.False(t, remote.IsLocal())

	local := Repo{Repo: LocalRepo}
	assert.True(t, local.IsLocal())

	// The marker is exact, not a prefix or case-insensitive match
	almost := Repo{Repo: "Local"}
	assert.False(t, almost.IsLocal())
}

func TestLocalHooks(t *testing.T) {
	cfg := &Config{
		Repos: []Repo{
			{
				Repo:  "https://github.com/psf/black",
				Rev:   "23.3.0",
				Hooks: []Hook{{ID: "black"}},
			},
			{
				Repo: LocalRepo,
				Hooks: []Hook{
					{ID: "pytest-check", Entry: "pytest", Language: "system"},
				},
			},
			{
				Repo: LocalRepo,
				Hooks: []Hook{
					{ID: "make-lint", Entry: "make lint", Language: "system"},
				},
			},
		},
	}

	hooks := cfg.LocalHooks()
	assert.Len(t, hooks, 2)
	assert.Equal(t, "pytest-check", hooks[0].ID)
	assert.Equal(t, "make-lint", hooks[1].ID)
}

func TestHookByID(t *testing.T) {
	cfg := &Config{
		Repos: []Repo{
			{
				Repo: "https://github.com/pre-commit/pre-commit-hooks",
				Rev:  "v4.4.0",
				Hooks: []Hook{
					{ID: "check-yaml"},
					{ID: "end-of-file-fixer"},
				},
			},
			{
				Repo: LocalRepo,
				Hooks: []Hook{
					{ID: "pytest-check", Entry: "pytest", Language: "system"},
				},
			},
		},
	}

	hook, ok := cfg.HookByID("https://github.com/pre-commit/pre-commit-hooks", "end-of-file-fixer")
	assert.True(t, ok)
	assert.Equal(t, "end-of-file-fixer", hook.ID)

	hook, ok = cfg.HookByID(LocalRepo, "pytest-check")
	assert.True(t, ok)
	assert.Equal(t, "pytest", hook.Entry)

	// Same id under a different source does not match
	_, ok = cfg.HookByID("https://github.com/psf/black", "check-yaml")
	assert.False(t, ok)

	_, ok = cfg.HookByID("https://github.com/pre-commit/pre-commit-hooks", "no-such-hook")
	assert.False(t, ok)
}

func TestHookCount(t *testing.T) {
	empty := &Config{}
	assert.Equal(t, 0, empty.HookCount())

	cfg := &Config{
		Repos: []Repo{
			{Repo: "a", Hooks: []Hook{{ID: "one"}, {ID: "two"}}},
			{Repo: "b", Hooks: []Hook{{ID: "three"}}},
		},
	}
	assert.Equal(t, 3, cfg.HookCount())
}
