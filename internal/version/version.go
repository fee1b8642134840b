// Package version contains the SDK version string.
package version

// Version is the SDK release version, also reported in the User-Agent
// header of every API request.
const Version = "0.1.0"
