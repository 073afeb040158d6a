// Package health aggregates dependency checks, such as the Healthcheck
// functions of the redis and pg packages, into a single readiness result
// suitable for probes wired by the host application.
package health
