// Package dto contains the request payloads accepted by the HTTP API and the
// translation of binding failures into domain errors.
//
// Naming convention: <Action><Resource>Request. Each request type converts
// itself to the domain input its use case expects.
package dto
