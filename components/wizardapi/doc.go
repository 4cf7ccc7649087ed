// Package wizardapi exposes application wizard sessions over net/http.
//
// Each session owns a wizard.Controller kept in an in-memory store keyed by a
// random UUID. Sessions that stay idle longer than the configured TTL are
// swept in the background; a successfully submitted session is discarded once
// its receipt has been returned. Routes are mounted under /api/wizard by
// default:
//
//	POST   /sessions                 create a session
//	GET    /sessions/{id}            current snapshot
//	PATCH  /sessions/{id}/fields     set field values
//	POST   /sessions/{id}/next       validate and advance
//	POST   /sessions/{id}/previous   go back one step
//	POST   /sessions/{id}/submit     submit from the review step
//	GET    /sessions/{id}/summary    HTML summary
//	DELETE /sessions/{id}            discard
package wizardapi
