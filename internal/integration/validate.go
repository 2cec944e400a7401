package integration

import (
	"context"
	"fmt"

	"github.com/hostcfg/podnet/internal/config"
)

// ValidateIntegration runs the pre-flight checks for a create request:
// required fields and address syntax through struct tags, then
// store-backed collision checks. It never mutates state. Store read
// failures surface as validation errors so the report always renders.
func (e *Engine) ValidateIntegration(ctx context.Context, name string, opts CreateOptions) config.ValidationErrors {
	var verrs config.ValidationErrors

	if name == "" {
		verrs = append(verrs, config.ValidationError{
			FieldPath: "network_name",
			Message:   "network name is required",
		})
		return verrs
	}

	driver, err := ParseDriver(string(opts.Driver))
	if err != nil {
		verrs = append(verrs, config.ValidationError{
			ItemName:  name,
			FieldPath: "driver",
			Message:   err.Error(),
		})
		return verrs
	}
	opts.Driver = driver

	if err := config.Validate(&opts); err != nil {
		verrs = append(verrs, config.ConvertValidatorErrors(err, "", name)...)
	}

	// Macvlan and ipvlan have no derivable default: the parent interface
	// must be named explicitly.
	if !driver.NeedsBridge() && opts.DeviceName == "" {
		verrs = append(verrs, config.ValidationError{
			ItemName:  name,
			FieldPath: "device_name",
			Message:   fmt.Sprintf("%s networks require a parent interface", driver),
		})
	}

	verrs = append(verrs, e.validateAgainstStore(ctx, name, driver, opts)...)
	return verrs
}

func (e *Engine) validateAgainstStore(ctx context.Context, name string, driver Driver, opts CreateOptions) config.ValidationErrors {
	var verrs config.ValidationErrors

	sections, err := e.store.Sections(ctx, DomainNetwork, SectionInterface)
	if err != nil {
		verrs = append(verrs, config.ValidationError{
			ItemName:  name,
			FieldPath: "store",
			Message:   fmt.Sprintf("failed to read host configuration: %v", err),
		})
		return verrs
	}

	device := e.naming.DeviceName(name, opts.DeviceName)

	for _, sec := range sections {
		if sec.Name == name {
			// Reusing an existing section is fine as long as it is ours:
			// a non-static protocol means someone else owns it.
			if proto := sec.Option("proto").First(); proto != "" && proto != "static" {
				verrs = append(verrs, config.ValidationError{
					ItemName:  name,
					FieldPath: "network_name",
					Message:   fmt.Sprintf("interface %s already exists with protocol %s", name, proto),
				})
			}
			continue
		}

		if driver.NeedsBridge() && sec.Option("device").First() == device {
			verrs = append(verrs, config.ValidationError{
				ItemName:  name,
				FieldPath: "device_name",
				Message:   fmt.Sprintf("bridge %s is already used by interface %s", device, sec.Name),
			})
		}
	}

	return verrs
}
