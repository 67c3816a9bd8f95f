package check

import (
	"errors"
	"fmt"
	"strings"

	"uptime-monitor/pkg/utils"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate normalises c in place (trimmed id, phone and url) and checks every
// field the probe needs. State and LastChecked are never a reason to reject
// a record.
func Validate(c *Check) error {
	c.ID = strings.TrimSpace(c.ID)
	c.OwnerPhone = strings.TrimSpace(c.OwnerPhone)
	c.URL = strings.TrimSpace(c.URL)

	if err := validate.Struct(c); err != nil {
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			return fmt.Errorf("invalid check: %s", strings.TrimPrefix(utils.ValidationMessage(ve), "invalid fields: "))
		}
		return err
	}
	return nil
}
