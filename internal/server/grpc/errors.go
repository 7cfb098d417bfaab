package grpc

import (
	"context"
	"errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/dmitrijs2005/habitauth/internal/common"
)

// toStatus maps service errors to gRPC status codes. Messages for
// infrastructure failures are generic.
func toStatus(err error) error {
	switch {
	case errors.Is(err, common.ErrMalformedHeader):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, common.ErrorValidation):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, common.ErrorAlreadyExists):
		return status.Error(codes.AlreadyExists, "user with this username or email already exists")
	case errors.Is(err, common.ErrorUnauthorized):
		return status.Error(codes.Unauthenticated, err.Error())
	case errors.Is(err, common.ErrRateLimited):
		return status.Error(codes.ResourceExhausted, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, "store timeout")
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, "request cancelled")
	default:
		return status.Error(codes.Internal, "internal error")
	}
}
