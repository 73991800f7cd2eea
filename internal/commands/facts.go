package commands

import (
	"fmt"
	"io"

	"github.com/hemantobora/stackcraft/regioninfo"
)

// FactsOptions filters the fact database listing.
type FactsOptions struct {
	Region string
	Name   string
	JSON   bool
}

// Facts queries the built-in fact database.
func Facts(w io.Writer, opts FactsOptions) error {
	reg := regioninfo.Default()

	regions := reg.Regions()
	if opts.Region != "" {
		if len(reg.Names(opts.Region)) == 0 {
			return fmt.Errorf("no facts registered for region '%s'", opts.Region)
		}
		regions = []string{opts.Region}
	}

	if opts.JSON {
		out := map[string]map[string]string{}
		for _, region := range regions {
			byName := map[string]string{}
			for _, name := range reg.Names(region) {
				if opts.Name != "" && name != opts.Name {
					continue
				}
				v, _ := reg.Find(region, name)
				byName[name] = v
			}
			if len(byName) > 0 {
				out[region] = byName
			}
		}
		return printJSON(w, out)
	}

	matched := false
	for _, region := range regions {
		var lines []string
		for _, name := range reg.Names(region) {
			if opts.Name != "" && name != opts.Name {
				continue
			}
			v, _ := reg.Find(region, name)
			lines = append(lines, fmt.Sprintf("  %-50s %s", name, v))
		}
		if len(lines) == 0 {
			continue
		}
		matched = true
		fmt.Fprintf(w, "📍 %s\n", region)
		for _, line := range lines {
			fmt.Fprintln(w, line)
		}
	}
	if !matched {
		return fmt.Errorf("no facts matched name '%s'", opts.Name)
	}
	return nil
}
