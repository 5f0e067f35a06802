package catalog

import "lashstudio/pkg/model"

var defaultServices = []model.ServiceOffering{
	{ID: "classic", Name: "CLASSIC FULL SET", Description: "Individual application for timeless elegance.", DurationLabel: "2 hrs", Price: 70},
	{ID: "hybrid", Name: "HYBRID SET", Description: "Mix of classic and volume for textured dimension.", DurationLabel: "2 hrs", Price: 70},
	{ID: "russian", Name: "RUSSIAN VOLUME", Description: "Full, fluffy, and dramatic statement look.", DurationLabel: "2.5 hrs", Price: 85},
	{ID: "mega", Name: "MEGA VOLUME", Description: "Maximum drama for bold, glamorous impact.", DurationLabel: "3 hrs", Price: 95},
	{ID: "wet", Name: "WET LOOK WISPY", Description: "Trendy, textured, editorial aesthetic.", DurationLabel: "2.5 hrs", Price: 85},
	{ID: "infill-classic", Name: "INFILLS - CLASSIC", Description: "Maintenance for your classic set.", DurationLabel: "1 hr", Price: 40},
	{ID: "infill-volume", Name: "INFILLS - VOLUME", Description: "Maintenance for your volume set.", DurationLabel: "1.5 hrs", Price: 50},
}

// Default returns the studio's standard menu.
func Default() *Catalog {
	return MustNew(defaultServices)
}
