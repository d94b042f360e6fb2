// Package api handles incoming HTTP requests, request validation and
// response formatting for the generation service. It translates HTTP
// concerns into generation calls and maps generation failures onto status
// codes a study client can act on.
package api
