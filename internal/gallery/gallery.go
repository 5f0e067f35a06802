package gallery

import (
	"math"

	"lashstudio/internal/catalog"
	"lashstudio/pkg/model"
)

// SwipeConfidenceThreshold is the minimum |offset * velocity| a drag needs
// to count as a page turn.
const SwipeConfidenceThreshold = 10000

// Style is a showcased look, backed by a catalog offering.
type Style struct {
	ServiceID string `json:"service_id"`
	Color     string `json:"color"`
}

type StyleView struct {
	model.ServiceOffering
	Color string `json:"color"`
}

var defaultStyles = []Style{
	{ServiceID: "classic", Color: "#D4A5A5"},
	{ServiceID: "hybrid", Color: "#B8972E"},
	{ServiceID: "russian", Color: "#D4AF37"},
	{ServiceID: "mega", Color: "#E5C158"},
	{ServiceID: "wet", Color: "#D4AF37"},
}

func DefaultStyles() []Style {
	out := make([]Style, len(defaultStyles))
	copy(out, defaultStyles)
	return out
}

// Styles joins styles to their offerings. Styles whose service is not in
// the catalog are skipped.
func Styles(c *catalog.Catalog, styles []Style) []StyleView {
	views := make([]StyleView, 0, len(styles))
	for _, st := range styles {
		svc, ok := c.FindService(st.ServiceID)
		if !ok {
			continue
		}
		views = append(views, StyleView{ServiceOffering: svc, Color: st.Color})
	}
	return views
}

// BookStyle resolves the offering a "book this look" action preselects.
// Only showcased styles qualify.
func BookStyle(c *catalog.Catalog, styles []Style, serviceID string) (model.ServiceOffering, bool) {
	for _, st := range styles {
		if st.ServiceID == serviceID {
			return c.FindService(serviceID)
		}
	}
	return model.ServiceOffering{}, false
}

// Carousel is the position of the style slider.
type Carousel struct {
	count     int
	index     int
	direction int
}

func NewCarousel(count int) *Carousel {
	return &Carousel{count: count}
}

func (c *Carousel) Current() int {
	return c.index
}

// Direction of the last move: 1 forward, -1 backward, 0 before any move.
func (c *Carousel) Direction() int {
	return c.direction
}

// Paginate moves one item in the sign of direction, wrapping at both ends.
func (c *Carousel) Paginate(direction int) int {
	if c.count == 0 || direction == 0 {
		return c.index
	}
	step := 1
	if direction < 0 {
		step = -1
	}
	c.direction = step
	c.index += step
	if c.index < 0 {
		c.index = c.count - 1
	}
	if c.index >= c.count {
		c.index = 0
	}
	return c.index
}

// Jump selects index directly. Out of range indexes are ignored.
func (c *Carousel) Jump(index int) int {
	if index < 0 || index >= c.count || index == c.index {
		return c.index
	}
	if index > c.index {
		c.direction = 1
	} else {
		c.direction = -1
	}
	c.index = index
	return c.index
}

// Swipe turns a horizontal drag into a page turn. Dragging left moves
// forward. It reports whether the carousel moved.
func (c *Carousel) Swipe(offset, velocity float64) bool {
	power := math.Abs(offset) * velocity
	switch {
	case power < -SwipeConfidenceThreshold:
		c.Paginate(1)
		return true
	case power > SwipeConfidenceThreshold:
		c.Paginate(-1)
		return true
	}
	return false
}
