// Package api handles incoming HTTP requests, request validation, and
// response formatting. It adapts external clients to the internal card,
// progress, and auth services, translating HTTP concerns to business
// operations and service errors back to status codes.
package api
