package iam

import (
	"fmt"

	"github.com/hemantobora/stackcraft/regioninfo"
	"github.com/hemantobora/stackcraft/stack"
)

// Principal is an identity that may assume a role or appear in a statement.
type Principal interface {
	// Fragment renders the statement Principal entry for the given stack.
	Fragment(s *stack.Stack) (map[string]any, error)
}

// ServicePrincipal is an AWS service identity. A handful of services use a
// region-qualified principal in some partitions; those resolve through the
// stack's regional fact lookup, with the universal form as the default.
type ServicePrincipal struct {
	Service string // e.g. "states.amazonaws.com"
}

// NewServicePrincipal returns a principal for the given service.
func NewServicePrincipal(service string) *ServicePrincipal {
	return &ServicePrincipal{Service: service}
}

// Fragment resolves the service principal for the stack's environment.
func (p *ServicePrincipal) Fragment(s *stack.Stack) (map[string]any, error) {
	if p.Service == "" {
		return nil, fmt.Errorf("service principal requires a service name")
	}
	principal, err := s.RegionalFact(
		regioninfo.ServicePrincipal(p.Service),
		stack.WithDefault(p.Service),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve principal for service %q: %w", p.Service, err)
	}
	return map[string]any{"Service": principal}, nil
}

// AccountPrincipal is the root identity of an AWS account.
type AccountPrincipal struct {
	AccountID string
}

// NewAccountPrincipal returns a principal for the given account.
func NewAccountPrincipal(accountID string) *AccountPrincipal {
	return &AccountPrincipal{AccountID: accountID}
}

// Fragment renders the account root ARN for the stack's partition.
func (p *AccountPrincipal) Fragment(s *stack.Stack) (map[string]any, error) {
	if p.AccountID == "" {
		return nil, fmt.Errorf("account principal requires an account ID")
	}
	arn := "arn:" + s.Partition() + ":iam::" + p.AccountID + ":root"
	return map[string]any{"AWS": arn}, nil
}

// ArnPrincipal is an arbitrary IAM ARN.
type ArnPrincipal struct {
	Arn string
}

// NewArnPrincipal returns a principal for the given ARN.
func NewArnPrincipal(arn string) *ArnPrincipal {
	return &ArnPrincipal{Arn: arn}
}

// Fragment renders the ARN principal entry.
func (p *ArnPrincipal) Fragment(_ *stack.Stack) (map[string]any, error) {
	if p.Arn == "" {
		return nil, fmt.Errorf("arn principal requires an ARN")
	}
	return map[string]any{"AWS": p.Arn}, nil
}
