// Package docs Rider Docs API.
//
// Documentation of Rider Docs API.
//
//     Schemes: https
//     BasePath: /
//     Version: 1.0.0
//
//     Consumes:
//     - application/json
//     - multipart/form-data
//
//     Produces:
//     - application/json
//
//     Security:
//     - basic
//     - bearer
//
//    SecurityDefinitions:
//    basic:
//      type: basic
//    bearer:
//      type: apiKey
//      name: Authorization
//      in: header
//
// swagger:meta
package docs

import (
	"github.com/linesmerrill/rider-docs-api/models"
	"github.com/linesmerrill/rider-docs-api/verification"
)

// swagger:route GET /health health healthEndpointID
// Lists the healthchex of the web service api.
// responses:
//   200: healthResponse

// Shows the current health of the api. true means it is alive, false means it is not.
// swagger:response healthResponse
type healthResponseWrapper struct {
	// in:body
	Body models.HealthCheckResponse
}

// swagger:route POST /api/v1/documents/upload documents uploadDocuments
// Stores rider documents and returns a credential referencing them.
// responses:
//   200: uploadResponse
//   400: errorResponse
//   500: errorResponse

// The stored files and the new QR credential.
// swagger:response uploadResponse
type uploadResponseWrapper struct {
	// in:body
	Body models.UploadResponse
}

// swagger:route GET /api/v1/documents documents listDocuments
// Lists the authenticated rider's documents, newest first.
// responses:
//   200: documentsResponse
//   401: errorResponse

// The rider's documents and profile.
// swagger:response documentsResponse
type documentsResponseWrapper struct {
	// in:body
	Body models.DocumentsResponse
}

// swagger:route POST /api/v1/qr-generate credentials generateQRCode
// Issues a QR credential for a rider and a list of document references.
// responses:
//   200: qrCodeResponse
//   400: errorResponse

// A base64 credential and its expiry.
// swagger:response qrCodeResponse
type qrCodeResponseWrapper struct {
	// in:body
	Body models.QRCodeResponse
}

// swagger:route POST /api/v1/verify credentials verifyQRCode
// Answers a fuel station or police scan of a rider credential.
// responses:
//   200: verificationResponse
//   400: errorResponse

// What the verifier is shown.
// swagger:response verificationResponse
type verificationResponseWrapper struct {
	// in:body
	Body verification.Result
}

// swagger:route POST /api/v1/auth/token auth createToken
// Exchanges verifier basic credentials for a bearer token.
// responses:
//   200: tokenResponse
//   401: errorResponse

// An opaque bearer token.
// swagger:response tokenResponse
type tokenResponseWrapper struct {
	// in:body
	Body models.TokenResponse
}

// A failed request.
// swagger:response errorResponse
type errorResponseWrapper struct {
	// in:body
	Body models.ErrorResponse
}
