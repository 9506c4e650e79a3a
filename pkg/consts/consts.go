package consts

import "os"

const (
	// ModeFile is the standard file mode for creating files
	ModeFile = os.FileMode(0o644)

	// ConfigFile is the name of the optional project configuration file
	ConfigFile = ".sqlriver.yaml"

	// SQLExtension is the file extension picked up when formatting directories
	SQLExtension = ".sql"
)
