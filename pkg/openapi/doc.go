// Package openapi carries the HTTP contract of the form wizard as an embedded
// OpenAPI 3 document. The document is parsed and validated with kin-openapi,
// served as-is at /openapi.json, and its schemas are reused to check request
// payloads before they reach the wizard.
package openapi
