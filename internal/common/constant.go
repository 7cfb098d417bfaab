package common

// AuthorizationHeaderName is the gRPC metadata key carrying the raw
// authorization value ("Bearer <token>").
const AuthorizationHeaderName = "authorization"

// BearerPrefix is the only authorization scheme accepted by the server.
const BearerPrefix = "Bearer "
