// Package api contains the HTTP handlers, request/response models and
// error mapping for the REST surface. Handlers stay thin: they decode
// and validate input, call into stores and services, and translate
// errors to sanitized responses.
package api
