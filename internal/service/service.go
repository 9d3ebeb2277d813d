package service

import "errors"

const (
	ServiceName        = "Plume"
	ServiceDisplayName = "Plume E-Signature API"
	ServiceDescription = "Serves the Plume contract, template and signer-flow API"
)

// ErrUnsupported is returned by service management calls off Windows
var ErrUnsupported = errors.New("service management is only available on windows")
