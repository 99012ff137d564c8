package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for domain operations
var (
	// ErrNotFound is returned when a requested resource doesn't exist
	ErrNotFound = errors.New("not found")

	// ErrInvalidAddress is returned when an Ethereum address is invalid or missing
	ErrInvalidAddress = errors.New("invalid address")

	// ErrInvalidSalt is returned when a deployment salt can't be parsed
	ErrInvalidSalt = errors.New("invalid salt")

	// ErrAliasNotFound is returned when no compiled artifact matches a contract alias
	ErrAliasNotFound = errors.New("contract alias not found")

	// ErrInitializerNotFound is returned when the alias ABI has no such initializer
	ErrInitializerNotFound = errors.New("initializer not found")

	// ErrArgumentMismatch is returned when initializer args don't match the signature
	ErrArgumentMismatch = errors.New("initializer argument mismatch")

	// ErrAddressCollision is returned when code already exists at the salt-derived address
	ErrAddressCollision = errors.New("address collision")

	// ErrPredictionMismatch is returned when a proxy lands somewhere other than predicted
	ErrPredictionMismatch = errors.New("deployed address does not match prediction")

	// ErrInconsistentStack is returned when recorded proxies would mix two rollouts
	ErrInconsistentStack = errors.New("inconsistent proxy stack")

	// ErrChainIDMismatch is returned when the RPC endpoint serves a different chain
	ErrChainIDMismatch = errors.New("chain ID mismatch")

	// ErrSenderNotFound is returned when no signing account is configured
	ErrSenderNotFound = errors.New("sender not found")
)

// DeploymentStage names the step of a proxy creation that failed
type DeploymentStage string

const (
	StageResolve        DeploymentStage = "resolve"
	StageEncode         DeploymentStage = "encode"
	StageConnect        DeploymentStage = "connect"
	StageImplementation DeploymentStage = "implementation"
	StageProxy          DeploymentStage = "proxy"
	StageReceipt        DeploymentStage = "receipt"
)

// DeploymentError is the single error kind a proxy creation service produces
type DeploymentError struct {
	Alias string
	Stage DeploymentStage
	Err   error
}

func (e *DeploymentError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "deploy %s", e.Alias)
	if e.Stage != "" {
		fmt.Fprintf(&b, " (%s)", e.Stage)
	}
	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	return b.String()
}

func (e *DeploymentError) Unwrap() error {
	return e.Err
}

// NewDeploymentError wraps err for alias at stage. A nil err yields nil.
func NewDeploymentError(alias string, stage DeploymentStage, err error) error {
	if err == nil {
		return nil
	}
	var de *DeploymentError
	if errors.As(err, &de) {
		return err
	}
	return &DeploymentError{Alias: alias, Stage: stage, Err: err}
}
