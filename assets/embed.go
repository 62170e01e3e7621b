package assets

import (
	_ "embed"
	"strings"
)

// helpText is the operator instructions shown in the side panel.
//
//go:embed help.txt
var helpText string

// HelpText returns the embedded instructions without the trailing newline.
func HelpText() string { return strings.TrimRight(helpText, "\n") }
