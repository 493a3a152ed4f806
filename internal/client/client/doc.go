// Package client talks to the bloglist HTTP API. APIClient keeps the bearer
// token obtained at login and sends it with every authenticated call.
package client
