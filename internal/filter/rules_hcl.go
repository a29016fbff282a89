package filter

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
)

// rulesFile is the root schema of a rules file:
//
//	rules {
//	  boundary     = "administrative"
//	  region_key   = "de:regionalschluessel"
//	  admin_levels = [4, 6, "8"]
//	}
type rulesFile struct {
	Rules *rulesBlock `hcl:"rules,block"`
}

type rulesBlock struct {
	Boundary  *string `hcl:"boundary,optional"`
	RegionKey *string `hcl:"region_key,optional"`

	// Captured as a raw expression so levels may be written as numbers or
	// strings; OSM stores admin_level as a string tag either way.
	AdminLevels hcl.Expression `hcl:"admin_levels,optional"`
}

// LoadRules reads an HCL rules file and overlays it onto DefaultRules.
// Attributes left out of the file keep their defaults.
func LoadRules(path string) (Rules, error) {
	rules := DefaultRules()

	parsed, diags := hclparse.NewParser().ParseHCLFile(path)
	if diags.HasErrors() {
		return Rules{}, fmt.Errorf("cannot parse rules file: %w", diags)
	}

	var file rulesFile
	if diags := gohcl.DecodeBody(parsed.Body, nil, &file); diags.HasErrors() {
		return Rules{}, fmt.Errorf("cannot decode rules file: %w", diags)
	}
	if file.Rules == nil {
		return Rules{}, fmt.Errorf("rules file %q contains no rules block", path)
	}

	if file.Rules.Boundary != nil {
		rules.Boundary = *file.Rules.Boundary
	}
	if file.Rules.RegionKey != nil {
		rules.RegionKey = *file.Rules.RegionKey
	}

	if file.Rules.AdminLevels != nil {
		levels, err := adminLevels(file.Rules.AdminLevels)
		if err != nil {
			return Rules{}, err
		}
		if levels != nil {
			rules.AdminLevels = levels
		}
	}

	return rules, nil
}

// adminLevels evaluates the admin_levels expression into tag values.
func adminLevels(expr hcl.Expression) ([]string, error) {
	value, diags := expr.Value(nil)
	if diags.HasErrors() {
		return nil, fmt.Errorf("cannot evaluate admin_levels: %w", diags)
	}
	if value.IsNull() {
		return nil, nil
	}
	if !value.CanIterateElements() {
		return nil, fmt.Errorf("admin_levels must be a list, got %s", value.Type().FriendlyName())
	}

	var levels []string
	for it := value.ElementIterator(); it.Next(); {
		_, element := it.Element()
		str, err := convert.Convert(element, cty.String)
		if err != nil {
			return nil, fmt.Errorf("admin_levels element %s: %w", element.Type().FriendlyName(), err)
		}
		levels = append(levels, str.AsString())
	}

	return levels, nil
}
