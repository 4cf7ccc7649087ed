// Package statuslookup provides a small net/http handler for application
// status queries and the dashboard list.
//
// The handler responds to GET and HEAD requests on
// /api/applications/status?id=&email= and /api/applications/dashboard. The
// backing data defaults to the demo records embedded in pkg/status.
package statuslookup
