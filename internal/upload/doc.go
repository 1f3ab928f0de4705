// Package upload implements the submission side of the uploader.
//
// A Controller turns one Form into one multipart POST to
// {server}/bin/{application}/{workspace}. Submit returns immediately with an
// *Upload: a future for the eventual Outcome plus an ordered stream of
// progress Events. While the body is streamed the shared Indicator is shown
// and driven with the integer percentage; it is hidden and reset to zero when
// the transfer reaches 100% or the request ends.
//
// Every completed request is decoded into exactly one Outcome (Success or
// Failure) and handed to the injected Renderer, which appends one log entry.
// Transport errors, non-2xx responses and malformed bodies all end up on the
// Failure path; nothing is retried.
//
// Several submits may be in flight at once. Their outcomes are rendered in
// completion order.
package upload
