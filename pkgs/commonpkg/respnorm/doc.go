// Package respnorm reduces API responses to the payload under a named field.
//
// Responses may arrive as values exposing named fields, as generic keyed
// mappings, or as raw JSON documents. SafeGetData accepts all three and never
// fails: when the field is absent the response is returned unchanged.
package respnorm
