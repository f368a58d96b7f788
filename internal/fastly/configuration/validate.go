package configuration

import (
	"errors"
	"fmt"
	"strings"

	"github.com/asaskevich/govalidator"
)

func required(kind Kind, name, field, value string) error {
	if value == "" {
		return fmt.Errorf("%s %q: field %q is required but not set", kind, name, field)
	}
	return nil
}

// oneOf accepts the empty string so that optional enum fields stay optional;
// defaults are filled before validation runs.
func oneOf(kind Kind, name, field, value string, choices ...string) error {
	if value == "" {
		return nil
	}
	for _, c := range choices {
		if value == c {
			return nil
		}
	}
	return fmt.Errorf("%s %q: field %q must be one of %s", kind, name, field, strings.Join(choices, ", "))
}

// validHost accepts an IP address or a resolvable-looking DNS name.
func validHost(kind Kind, name, field, value string) error {
	if value == "" {
		return nil
	}
	if govalidator.IsIP(value) || govalidator.IsDNSName(value) {
		return nil
	}
	return fmt.Errorf("%s %q: field %q is not a valid host or IP address", kind, name, field)
}

func validPort(kind Kind, name, field string, value int) error {
	if govalidator.InRangeInt(value, 0, 65535) {
		return nil
	}
	return fmt.Errorf("%s %q: field %q must be a port between 0 and 65535", kind, name, field)
}

func join(errs []error) error {
	filtered := errs[:0]
	for _, err := range errs {
		if err != nil {
			filtered = append(filtered, err)
		}
	}
	if len(filtered) == 0 {
		return nil
	}
	return errors.Join(filtered...)
}
