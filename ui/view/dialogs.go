package view

import (
	"path/filepath"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// DefaultExportName is offered when no export path was remembered.
const DefaultExportName = "centroids.csv"

// AskDirectory shows the folder picker. It returns "" when cancelled.
func AskDirectory(initial string) string {
	opts := []Opt{Title("Select image folder"), Mustexist(true)}
	if initial != "" {
		opts = append(opts, Initialdir(initial))
	}
	return ChooseDirectory(opts...)
}

// AskExportPath shows the save dialog for the CSV export. last is the previous
// export path, dir the open image directory; either may be empty.
func AskExportPath(last, dir string) string {
	initDir, initFile := dir, DefaultExportName
	if last != "" {
		initDir, initFile = filepath.Dir(last), filepath.Base(last)
	}
	opts := []Opt{Title("Save annotations"), Defaultextension(".csv"), Initialfile(initFile)}
	if initDir != "" {
		opts = append(opts, Initialdir(initDir))
	}
	return GetSaveFile(opts...)
}

func message(icon, title, msg string) {
	MessageBox(Icon(icon), Title(title), Msg(msg), Type("ok"))
}
