package base

// ConnectionFlags are the flags every command that talks to the API
// accepts. All of them are optional; unset values fall back to the
// ACCQSURE_* environment variables and then to ~/.accqsure.
type ConnectionFlags struct {
	CredentialsFile string
	ConfigDir       string
	APIEndpoint     string
}

// Register adds the connection flags to the given flag set.
func (cf *ConnectionFlags) Register(f *FlagSet) {
	f.StringVar(
		&cf.CredentialsFile, "credentials-file", "",
		"Path to the JSON credentials file.",
	)
	f.StringVar(
		&cf.ConfigDir, "config-dir", "",
		"Directory holding cached tokens and default credentials.",
	)
	f.StringVar(
		&cf.APIEndpoint, "api-endpoint", "",
		"Override the API base URL.",
	)
}
