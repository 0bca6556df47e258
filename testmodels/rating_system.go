/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package testmodels

import (
	"github.com/go-openapi/strfmt"

	"github.com/suparena/entitydb"
	"github.com/suparena/entitydb/driver"
)

var (
	ratingSystemName        = entitydb.Field[string]("name")
	ratingSystemDescription = entitydb.Field[string]("description")
	ratingSystemSiteURL     = entitydb.Field[string]("site_url")
)

// RatingSystemEntity is a row of the rating_system table.
type RatingSystemEntity struct {
	*entitydb.Entity
}

// NewRatingSystemEntity is the EntityFactory of RatingSystemEntity.
func NewRatingSystemEntity(d driver.Driver, table string) entitydb.Model {
	return &RatingSystemEntity{Entity: entitydb.NewEntity(d, table)}
}

// Name of the rating system.
func (r *RatingSystemEntity) Name() string { return ratingSystemName.Get(r) }

// Description of the rating system.
func (r *RatingSystemEntity) Description() string { return ratingSystemDescription.Get(r) }

// SiteURL is optional.
func (r *RatingSystemEntity) SiteURL() string { return ratingSystemSiteURL.Get(r) }

// UpdatedAt parses the updated_at column.
func (r *RatingSystemEntity) UpdatedAt() (strfmt.DateTime, error) {
	return dateTime(r.Get("updated_at"))
}
