package catalog

import (
	"errors"
	"fmt"
	"strings"

	"lashstudio/pkg/model"

	"github.com/go-playground/validator/v10"
)

var ErrDuplicateID = errors.New("duplicate service id")

// Catalog is the fixed, ordered set of offerings the studio sells.
type Catalog struct {
	services []model.ServiceOffering
	index    map[string]int
}

// New validates every offering and rejects duplicate IDs. A catalog that
// fails here is a static configuration error, so callers usually treat it
// as fatal at startup.
func New(services []model.ServiceOffering) (*Catalog, error) {
	validate := validator.New()

	c := &Catalog{
		services: make([]model.ServiceOffering, 0, len(services)),
		index:    make(map[string]int, len(services)),
	}
	for i, s := range services {
		if err := validate.Struct(s); err != nil {
			var validationErrs validator.ValidationErrors
			if errors.As(err, &validationErrs) {
				return nil, fmt.Errorf("service %d (%q): %s", i, s.ID, describe(validationErrs))
			}
			return nil, err
		}
		if _, exists := c.index[s.ID]; exists {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateID, s.ID)
		}
		c.index[s.ID] = len(c.services)
		c.services = append(c.services, s)
	}
	return c, nil
}

// MustNew is New for package-level literals that are known to be valid.
func MustNew(services []model.ServiceOffering) *Catalog {
	c, err := New(services)
	if err != nil {
		panic(err)
	}
	return c
}

// ListServices returns the offerings in display order. The slice is a copy.
func (c *Catalog) ListServices() []model.ServiceOffering {
	out := make([]model.ServiceOffering, len(c.services))
	copy(out, c.services)
	return out
}

func (c *Catalog) FindService(id string) (model.ServiceOffering, bool) {
	i, ok := c.index[id]
	if !ok {
		return model.ServiceOffering{}, false
	}
	return c.services[i], true
}

func (c *Catalog) Len() int {
	return len(c.services)
}

func describe(errs validator.ValidationErrors) string {
	messages := make([]string, 0, len(errs))
	for _, err := range errs {
		switch err.Tag() {
		case "required":
			messages = append(messages, fmt.Sprintf("%s is required", err.Field()))
		case "min":
			messages = append(messages, fmt.Sprintf("%s must be at least %s", err.Field(), err.Param()))
		default:
			messages = append(messages, err.Error())
		}
	}
	return strings.Join(messages, "; ")
}
