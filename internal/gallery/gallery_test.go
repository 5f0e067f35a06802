package gallery

import (
	"testing"

	"lashstudio/internal/catalog"
	"lashstudio/pkg/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStyles(t *testing.T) {
	views := Styles(catalog.Default(), DefaultStyles())

	require.Len(t, views, 5)
	assert.Equal(t, "classic", views[0].ID)
	assert.Equal(t, "#D4A5A5", views[0].Color)
	assert.Equal(t, 85, views[2].Price)
	assert.Equal(t, "wet", views[4].ID)
}

func TestStyles_SkipsUnknownService(t *testing.T) {
	c := catalog.MustNew([]model.ServiceOffering{
		{ID: "classic", Name: "Classic", Description: "d", DurationLabel: "2 hrs", Price: 70},
	})

	views := Styles(c, DefaultStyles())
	if len(views) != 1 || views[0].ID != "classic" {
		t.Fatalf("Styles() = %+v, want only classic", views)
	}
}

func TestBookStyle(t *testing.T) {
	tests := []struct {
		name      string
		serviceID string
		wantOK    bool
		wantPrice int
	}{
		{"showcased style", "mega", true, 95},
		{"catalog service outside the gallery", "infill-classic", false, 0},
		{"unknown service", "nope", false, 0},
		{"empty", "", false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, ok := BookStyle(catalog.Default(), DefaultStyles(), tt.serviceID)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantPrice, svc.Price)
		})
	}
}

func TestBookStyle_StyleMissingFromCatalog(t *testing.T) {
	c := catalog.MustNew([]model.ServiceOffering{
		{ID: "classic", Name: "Classic", Description: "d", DurationLabel: "2 hrs", Price: 70},
	})

	if _, ok := BookStyle(c, DefaultStyles(), "mega"); ok {
		t.Error("BookStyle() resolved a style whose service is not offered")
	}
}

func TestCarousel_PaginateWraps(t *testing.T) {
	c := NewCarousel(5)

	assert.Equal(t, 4, c.Paginate(-1), "wraps backwards to the last style")
	assert.Equal(t, -1, c.Direction())
	assert.Equal(t, 0, c.Paginate(1), "wraps forwards to the first style")
	assert.Equal(t, 1, c.Direction())

	c.Paginate(1)
	c.Paginate(1)
	assert.Equal(t, 2, c.Current())

	assert.Equal(t, 2, c.Paginate(0))
	assert.Equal(t, 3, c.Paginate(7), "only the sign of direction counts")
}

func TestCarousel_Jump(t *testing.T) {
	c := NewCarousel(5)

	assert.Equal(t, 3, c.Jump(3))
	assert.Equal(t, 1, c.Direction())
	assert.Equal(t, 1, c.Jump(1))
	assert.Equal(t, -1, c.Direction())
	assert.Equal(t, 1, c.Jump(5))
	assert.Equal(t, 1, c.Jump(-1))
}

func TestCarousel_Empty(t *testing.T) {
	c := NewCarousel(0)

	if got := c.Paginate(1); got != 0 {
		t.Errorf("Paginate(1) = %d, want 0", got)
	}
	if got := c.Jump(0); got != 0 {
		t.Errorf("Jump(0) = %d, want 0", got)
	}
}

func TestCarousel_Swipe(t *testing.T) {
	c := NewCarousel(5)

	assert.False(t, c.Swipe(-50, 10), "too weak")
	assert.Equal(t, 0, c.Current())

	assert.True(t, c.Swipe(-200, -100))
	assert.Equal(t, 1, c.Current())

	assert.True(t, c.Swipe(200, 100))
	assert.Equal(t, 0, c.Current())
}
