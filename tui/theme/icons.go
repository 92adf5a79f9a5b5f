package theme

import (
	"os"

	"github.com/lokitools/schema/settings"
)

// Nerd Font Icons (Private Constants)
const (
	nerdIconSuccess    = "󰄬" // md-check (U+F012C)
	nerdIconError      = "" // cod-error (U+EA87)
	nerdIconWarning    = "" // fa-warning (U+F071)
	nerdIconInfo       = "󰋼" // md-information (U+F02FC)
	nerdIconArrow      = "󰁔" // md-arrow_right (U+F0054)
	nerdIconBullet     = "" // oct-dot_fill (U+F444)
	nerdIconFolderPlus = "󰉗" // md-folder_plus (U+F0257)
	nerdIconFolderOpen = "󰝰" // md-folder_open (U+F0770)
	nerdIconRef        = "" // cod-references (U+EBF1)
	nerdIconSchema     = "󰘦" // md-code_json (U+F0626)
)

// ASCII Fallback Icons (Private Constants)
const (
	asciiIconSuccess    = "✓"
	asciiIconError      = "✗"
	asciiIconWarning    = "⚠"
	asciiIconInfo       = "ℹ"
	asciiIconArrow      = "→"
	asciiIconBullet     = "•"
	asciiIconFolderPlus = "+"
	asciiIconFolderOpen = "-"
	asciiIconRef        = "&"
	asciiIconSchema     = "{}"
)

// Public Icon Variables
var (
	IconSuccess    string
	IconError      string
	IconWarning    string
	IconInfo       string
	IconArrow      string
	IconBullet     string
	IconFolderPlus string
	IconFolderOpen string
	IconRef        string
	IconSchema     string
)

// init function determines which icon set to use
func init() {
	useASCII := false

	// 1. Check environment variable first
	if os.Getenv("LOKI_ICONS") == "ascii" {
		useASCII = true
	} else {
		// 2. Check settings file
		cfg, err := settings.LoadDefault()
		if err == nil && cfg != nil {
			var tuiCfg struct {
				Icons string `yaml:"icons"`
			}
			if err := cfg.UnmarshalExtension("tui", &tuiCfg); err == nil && tuiCfg.Icons == "ascii" {
				useASCII = true
			}
		}
	}

	if useASCII {
		IconSuccess = asciiIconSuccess
		IconError = asciiIconError
		IconWarning = asciiIconWarning
		IconInfo = asciiIconInfo
		IconArrow = asciiIconArrow
		IconBullet = asciiIconBullet
		IconFolderPlus = asciiIconFolderPlus
		IconFolderOpen = asciiIconFolderOpen
		IconRef = asciiIconRef
		IconSchema = asciiIconSchema
	} else {
		IconSuccess = nerdIconSuccess
		IconError = nerdIconError
		IconWarning = nerdIconWarning
		IconInfo = nerdIconInfo
		IconArrow = nerdIconArrow
		IconBullet = nerdIconBullet
		IconFolderPlus = nerdIconFolderPlus
		IconFolderOpen = nerdIconFolderOpen
		IconRef = nerdIconRef
		IconSchema = nerdIconSchema
	}
}
