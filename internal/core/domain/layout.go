package domain

import "path/filepath"

const (
	// QuireDirName is the name of the internal workspace directory.
	QuireDirName = ".quire"

	// LedgerDirName is the name of the export ledger directory.
	LedgerDirName = "ledger"

	// ProjectFileName is the name of the project configuration file.
	ProjectFileName = "quire.yaml"

	// SettingsFileName is the name of the optional tool settings file.
	SettingsFileName = "settings.yaml"

	// DebugLogFile is the name of the debug log file.
	DebugLogFile = "debug.log"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644
)

// DefaultLedgerPath returns the default path for the export ledger.
// It joins .quire and ledger.
func DefaultLedgerPath() string {
	return filepath.Join(QuireDirName, LedgerDirName)
}

// DefaultSettingsPath returns the default path for tool settings.
func DefaultSettingsPath() string {
	return filepath.Join(QuireDirName, SettingsFileName)
}

// DefaultDebugLogPath returns the default path for the debug log.
// It joins .quire and debug.log.
func DefaultDebugLogPath() string {
	return filepath.Join(QuireDirName, DebugLogFile)
}
