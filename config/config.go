package config

// Global flag values shared across commands. Cobra binds these in cmd and
// everything downstream reads them here instead of threading a dozen
// parameters through every call.
var (
	Network string

	NoRegistry   bool
	NoSigDB      bool
	Experimental bool

	AddressBookPath string
	NoCache         bool
	JSONOutput      bool
	Verbose         bool
)
