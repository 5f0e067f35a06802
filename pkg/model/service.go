package model

// ServiceOffering is a bookable lash treatment. Offerings are immutable once
// the catalog is built; Price is a whole amount in the studio currency.
type ServiceOffering struct {
	ID            string `json:"id" bson:"id" validate:"required"`
	Name          string `json:"name" bson:"name" validate:"required"`
	Description   string `json:"description" bson:"description" validate:"required"`
	DurationLabel string `json:"duration" bson:"duration" validate:"required"`
	Price         int    `json:"price" bson:"price" validate:"required,min=1"`
}
