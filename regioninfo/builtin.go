package regioninfo

import "fmt"

// Partition describes one AWS partition: its regions and the domain suffix
// shared by endpoints inside it.
type Partition struct {
	Name         string
	DomainSuffix string
	Regions      []string
}

// Partitions is the built-in partition database.
var Partitions = []Partition{
	{
		Name:         "aws",
		DomainSuffix: "amazonaws.com",
		Regions: []string{
			"af-south-1",
			"ap-east-1",
			"ap-northeast-1", "ap-northeast-2", "ap-northeast-3",
			"ap-south-1", "ap-south-2",
			"ap-southeast-1", "ap-southeast-2", "ap-southeast-3", "ap-southeast-4",
			"ca-central-1", "ca-west-1",
			"eu-central-1", "eu-central-2",
			"eu-north-1",
			"eu-south-1", "eu-south-2",
			"eu-west-1", "eu-west-2", "eu-west-3",
			"il-central-1",
			"me-central-1", "me-south-1",
			"sa-east-1",
			"us-east-1", "us-east-2",
			"us-west-1", "us-west-2",
		},
	},
	{
		Name:         "aws-cn",
		DomainSuffix: "amazonaws.com.cn",
		Regions:      []string{"cn-north-1", "cn-northwest-1"},
	},
	{
		Name:         "aws-us-gov",
		DomainSuffix: "amazonaws.com",
		Regions:      []string{"us-gov-east-1", "us-gov-west-1"},
	},
	{
		Name:         "aws-iso",
		DomainSuffix: "c2s.ic.gov",
		Regions:      []string{"us-iso-east-1", "us-iso-west-1"},
	},
	{
		Name:         "aws-iso-b",
		DomainSuffix: "sc2s.sgov.gov",
		Regions:      []string{"us-isob-east-1"},
	},
	{
		Name:         "aws-eusc",
		DomainSuffix: "amazonaws.eu",
		Regions:      []string{"eusc-de-east-1"},
	},
}

// PartitionRegions enumerates the regions of the named partitions, in
// partition order. Unknown partition names are ignored.
func PartitionRegions(partitions []string) []string {
	var out []string
	for _, want := range partitions {
		for _, p := range Partitions {
			if p.Name == want {
				out = append(out, p.Regions...)
			}
		}
	}
	return out
}

// Regions where the S3 static website endpoint predates the dotted
// endpoint form and uses a dash instead.
var s3WebsiteDashRegions = map[string]bool{
	"ap-northeast-1": true,
	"ap-southeast-1": true,
	"ap-southeast-2": true,
	"eu-west-1":      true,
	"sa-east-1":      true,
	"us-east-1":      true,
	"us-gov-west-1":  true,
	"us-west-1":      true,
	"us-west-2":      true,
}

// Services whose IAM principal carries the region and domain suffix rather
// than the universal "<service>.amazonaws.com" form.
var regionalPrincipalServices = []string{
	"states.amazonaws.com",
	"logs.amazonaws.com",
	"codedeploy.amazonaws.com",
}

func serviceShortName(service string) string {
	// "states.amazonaws.com" -> "states"
	for i := 0; i < len(service); i++ {
		if service[i] == '.' {
			return service[:i]
		}
	}
	return service
}

func init() {
	r := defaultRegistry
	for _, p := range Partitions {
		for _, region := range p.Regions {
			mustRegister(r, region, DomainSuffix, p.DomainSuffix)
			mustRegister(r, region, PartitionName, p.Name)

			if s3WebsiteDashRegions[region] {
				mustRegister(r, region, S3StaticWebsiteEndpoint,
					fmt.Sprintf("s3-website-%s.%s", region, p.DomainSuffix))
			} else {
				mustRegister(r, region, S3StaticWebsiteEndpoint,
					fmt.Sprintf("s3-website.%s.%s", region, p.DomainSuffix))
			}

			for _, service := range regionalPrincipalServices {
				mustRegister(r, region, ServicePrincipal(service),
					fmt.Sprintf("%s.%s.%s", serviceShortName(service), region, p.DomainSuffix))
			}
		}
	}
}

func mustRegister(r *Registry, region, name, value string) {
	if err := r.Register(region, name, value); err != nil {
		panic(err)
	}
}
