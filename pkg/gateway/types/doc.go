// Package types defines the JSON bodies returned by the gateway and the
// helpers that write them.
//
// Every error body has the shape {"detail": "<message>"}. The detail is
// always a string, including for 404 and 405 responses produced by the
// router.
package types
