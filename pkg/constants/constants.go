// Package constants provides shared constants used throughout the library
// codebase. This includes loan limits, file permissions, and other
// configuration values that should be consistent across the application.
package constants

// Loan rule constants define the circulation policy
const (
	// MaxActiveLoans is the maximum number of open loans per user
	MaxActiveLoans = 3

	// DefaultLoanDays is the default loan duration used by the CLI when no
	// due date is given
	DefaultLoanDays = 30
)

// ISBN constants define the accepted normalized lengths
const (
	// ISBN10Length is the length of a normalized ISBN-10
	ISBN10Length = 10

	// ISBN13Length is the length of a normalized ISBN-13
	ISBN13Length = 13
)

// DefaultEmailSuffix is the institutional email domain users must belong to
// unless the facade is configured otherwise
const DefaultEmailSuffix = "@campus.edu"

// DefaultSnapshotFile is the snapshot filename used by the CLI when no
// archive path is configured
const DefaultSnapshotFile = "archive.yaml"

// File permission constants define standard Unix file permissions
const (
	// DirPermissions is the default permission for created directories (rwxr-xr-x)
	DirPermissions = 0755

	// FilePermissions is the default permission for created files (rw-r--r--)
	FilePermissions = 0644
)
