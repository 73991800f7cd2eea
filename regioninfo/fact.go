// Package regioninfo holds facts: named properties whose concrete value
// varies by region. Facts are looked up at synthesis time, either directly
// when the region is known, or through a deployment-time lookup table when
// it is not.
package regioninfo

import "strings"

// Well-known fact names. A fact name is "<class>:<param>"; a bare name
// implies param "value".
const (
	DomainSuffix            = "domainSuffix"
	PartitionName           = "partition"
	S3StaticWebsiteEndpoint = "s3-static-website:endpoint"
)

// ServicePrincipal returns the fact name for a service's regional IAM
// principal, e.g. "service-principal:states.amazonaws.com".
func ServicePrincipal(service string) string {
	return "service-principal:" + service
}

// FactClass returns the class component of a fact name.
func FactClass(name string) string {
	if i := strings.Index(name, ":"); i >= 0 {
		return name[:i]
	}
	return name
}

// FactParam returns the parameter component of a fact name, or "value" for
// a bare name.
func FactParam(name string) string {
	if i := strings.Index(name, ":"); i >= 0 {
		return name[i+1:]
	}
	return "value"
}
